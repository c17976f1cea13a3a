package uniparc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"uniprotstream/core/model"
)

func TestDecode_EntryWithCrossReferencesAndSignature(t *testing.T) {
	frame := []byte(`<entry xmlns="x">
<accession>UPI000000001</accession>
<dbReference type="Swiss-Prot" id="P00001" version="1" active="Y" created="2004-01-23" last="2021-06-02"/>
<dbReference type="TrEMBL" id="A0A000" version="2" active="N" created="2010-02-01" last="2015-03-04"/>
<sequence length="4" checksum="X">MGDV</sequence>
<signatureSequenceMatch database="Pfam" id="PF00001">
  <lcn start="1" end="4"/>
</signatureSequenceMatch>
</entry>`)

	e, err := Decode(frame, nil, model.Options{})
	require.NoError(t, err)
	require.Equal(t, "UPI000000001", e.ID)
	require.Len(t, e.DBRefs, 2)
	require.Equal(t, "Swiss-Prot", e.DBRefs[0].Database)
	require.True(t, e.DBRefs[0].Active)
	require.False(t, e.DBRefs[1].Active)
	require.Equal(t, 2004, e.DBRefs[0].Created.Year)
	require.Equal(t, "MGDV", e.Sequence.Residues)
	require.Len(t, e.Signatures, 1)
	require.Equal(t, "Pfam", e.Signatures[0].Database)
	require.Len(t, e.Signatures[0].Locations, 1)
	require.Equal(t, int64(1), e.Signatures[0].Locations[0].Start)
	require.Equal(t, int64(4), e.Signatures[0].Locations[0].End)
}
