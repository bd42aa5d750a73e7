// core/cols/cols.go
package cols

import "bytes"

// List is a reusable container of sub-slices produced by Split. The
// fields borrow from the buffer passed to the most recent Split call;
// they are invalidated the next time the List is reused or the buffer
// is overwritten. A List must not be shared across goroutines.
type List struct {
	Fields [][]byte
}

// N returns the number of fields from the most recent split.
func (l *List) N() int { return len(l.Fields) }

// Split cuts buf on delim into reuse (allocating a List when reuse is
// nil) and returns it. Every token is recorded, including empty ones:
// the field count is always the delimiter count plus one, so an empty
// buffer yields a single empty field. The field capacity grows as
// needed and never shrinks, amortizing allocation across calls.
func Split(buf []byte, delim byte, reuse *List) *List {
	l := reuse
	if l == nil {
		l = &List{}
	}
	l.Fields = l.Fields[:0]
	for {
		i := bytes.IndexByte(buf, delim)
		if i < 0 {
			l.Fields = append(l.Fields, buf)
			return l
		}
		l.Fields = append(l.Fields, buf[:i])
		buf = buf[i+1:]
	}
}
