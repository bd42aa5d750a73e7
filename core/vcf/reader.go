// core/vcf/reader.go
package vcf

import (
	"bufio"
	"io"
	"strings"
)

// Reader streams a VCF line by line: header first, then data lines.
type Reader struct {
	sc      *bufio.Scanner
	pending []byte
}

// NewReader wraps r. The line cap is generous because CSQ-bearing
// records routinely run far past bufio's 64 KiB default.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &Reader{sc: sc}
}

// ReadHeader consumes meta lines up to and including the #CHROM column
// line. A headerless input yields an empty Header and leaves the first
// line queued for Next.
func (r *Reader) ReadHeader() (*Header, error) {
	h := &Header{csq: -1}
	for r.sc.Scan() {
		line := r.sc.Text()
		if strings.HasPrefix(line, "##") {
			h.Lines = append(h.Lines, line)
			if id, ok := InfoID(line); ok && id == "CSQ" {
				h.csq = len(h.Lines) - 1
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			h.Lines = append(h.Lines, line)
			return h, r.sc.Err()
		}
		r.pending = append([]byte(nil), r.sc.Bytes()...)
		return h, r.sc.Err()
	}
	return h, r.sc.Err()
}

// Next returns the next data line. The slice is owned by the Reader
// and invalidated by the following call; callers that hand lines to
// other goroutines must copy. ok is false at end of input or on error
// (check Err).
func (r *Reader) Next() ([]byte, bool) {
	if r.pending != nil {
		line := r.pending
		r.pending = nil
		return line, true
	}
	if !r.sc.Scan() {
		return nil, false
	}
	return r.sc.Bytes(), true
}

// Err returns the first scan error, if any.
func (r *Reader) Err() error { return r.sc.Err() }
