package source

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// multiCloser closes several io.Closers together, collecting the first
// error. Needed because a gzip-wrapped file has two layers to close:
// the gzip.Reader and the underlying *os.File.
type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open opens path as an entry source: "-" reads stdin, a ".gz" suffix or
// a gzip magic number transparently decompresses, anything else is read
// as plain bytes. Decompression is not part of the streaming contract
// spec.md describes for the splitter itself (deliberately out of scope,
// spec.md §1) — this helper is the one place the module does it, so
// callers reading real UniProt dumps (distributed gzip-compressed) don't
// have to wire klauspost/compress themselves.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, serr := fh.Seek(0, io.SeekStart); serr != nil {
		_ = fh.Close()
		return nil, serr
	}
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
