package frame

import (
	"bufio"
	"io"

	"uniprotstream/core/source"
)

func bufioReader(r io.Reader) *bufio.Reader {
	return source.New(r)
}
