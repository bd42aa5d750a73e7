// internal/writers/sink.go
package writers

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// nopWriteCloser keeps stdout open across Close.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// multiWriteCloser closes wrapped closers in order.
type multiWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (m *multiWriteCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// OpenSink returns the output writer for path ("-" = stdout, which is
// never closed) and output type: "v" plain VCF, "z" gzip-compressed.
func OpenSink(stdout io.Writer, path, typ string) (io.WriteCloser, error) {
	var w io.WriteCloser
	if path == "-" {
		w = nopWriteCloser{stdout}
	} else {
		fh, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		w = fh
	}

	switch typ {
	case "v":
		return w, nil
	case "z":
		zw := gzip.NewWriter(w)
		return &multiWriteCloser{Writer: zw, closers: []io.Closer{zw, w}}, nil
	default:
		_ = w.Close()
		return nil, fmt.Errorf("unknown output type %q", typ)
	}
}
