// core/vcf/open.go
package vcf

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path, transparently decompressing gzip
// input. BGZF (the block compression used for .vcf.gz) is gzip-framed,
// so the same reader handles it. Detection is by magic number (1F 8B)
// or by .gz/.bgz suffix; "-" reads stdin uncompressed.
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
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) ||
		strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".bgz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
