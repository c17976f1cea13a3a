package pipeline

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"uniprotstream/core/frame"
	"uniprotstream/core/xmlerr"
)

func upperEchoDecoder(frameBytes []byte) (any, error) {
	return strings.ToUpper(string(frameBytes)), nil
}

func failOnMarkerDecoder(marker string) Decoder {
	return func(frameBytes []byte) (any, error) {
		if strings.Contains(string(frameBytes), marker) {
			return nil, xmlerr.New(xmlerr.KindDecode, "hit marker %q", marker)
		}
		return string(frameBytes), nil
	}
}

func newTestSplitter(t *testing.T, doc string) *frame.Splitter {
	t.Helper()
	s, err := frame.NewSplitter(strings.NewReader(doc), "uniprot")
	require.NoError(t, err)
	return s
}

func TestSequential_YieldsEntriesInOrder(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<uniprot xmlns="x">`)
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, `<entry><accession>P%d</accession></entry>`, i)
	}
	b.WriteString(`</uniprot>`)

	seq := NewSequential(newTestSplitter(t, b.String()), upperEchoDecoder)
	var got []string
	for seq.Next() {
		require.NoError(t, seq.Err())
		got = append(got, seq.Entry().(string))
	}
	require.NoError(t, seq.Err())
	require.Len(t, got, 5)
}

func TestSequential_DecodeErrorThenResumes(t *testing.T) {
	doc := `<uniprot xmlns="x"><entry>ok1</entry><entry>BOOM</entry><entry>ok2</entry></uniprot>`
	seq := NewSequential(newTestSplitter(t, doc), failOnMarkerDecoder("BOOM"))

	require.True(t, seq.Next())
	require.NoError(t, seq.Err())

	require.True(t, seq.Next())
	require.Error(t, seq.Err())
	require.True(t, xmlerr.IsKind(seq.Err(), xmlerr.KindDecode))

	require.True(t, seq.Next())
	require.NoError(t, seq.Err())

	require.False(t, seq.Next())
}

func TestSequential_SplitterErrorIsTerminal(t *testing.T) {
	doc := `<uniprot xmlns="x"><entry>unterminated`
	seq := NewSequential(newTestSplitter(t, doc), upperEchoDecoder)

	require.False(t, seq.Next())
	require.Error(t, seq.Err())
	require.True(t, xmlerr.IsKind(seq.Err(), xmlerr.KindTruncatedEntry))
	require.False(t, seq.Next())
}
