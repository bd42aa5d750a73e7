// core/cols/cols_test.go
package cols

import (
	"bytes"
	"testing"
)

func TestSplitTokenCount(t *testing.T) {
	tests := []struct {
		in    string
		delim byte
		want  []string
	}{
		{"a,b,c", ',', []string{"a", "b", "c"}},
		{"a||b", '|', []string{"a", "", "b"}},
		{"|a|", '|', []string{"", "a", ""}},
		{"abc", ',', []string{"abc"}},
		{"", ',', []string{""}},
		{",,,", ',', []string{"", "", "", ""}},
	}
	for _, tt := range tests {
		got := Split([]byte(tt.in), tt.delim, nil)
		if got.N() != len(tt.want) {
			t.Fatalf("Split(%q, %q): %d fields, want %d", tt.in, tt.delim, got.N(), len(tt.want))
		}
		for i, w := range tt.want {
			if !bytes.Equal(got.Fields[i], []byte(w)) {
				t.Errorf("Split(%q, %q)[%d] = %q, want %q", tt.in, tt.delim, i, got.Fields[i], w)
			}
		}
	}
}

func TestSplitReuse(t *testing.T) {
	var l List
	Split([]byte("a|b|c|d|e"), '|', &l)
	if l.N() != 5 {
		t.Fatalf("first split: %d fields, want 5", l.N())
	}

	// A shorter second input must not leak stale fields.
	Split([]byte("x|y"), '|', &l)
	if l.N() != 2 {
		t.Fatalf("second split: %d fields, want 2", l.N())
	}
	if string(l.Fields[0]) != "x" || string(l.Fields[1]) != "y" {
		t.Errorf("second split fields = %q %q", l.Fields[0], l.Fields[1])
	}
}

func TestSplitBorrowsFromBuffer(t *testing.T) {
	buf := []byte("a,b")
	l := Split(buf, ',', nil)
	buf[0] = 'z'
	if string(l.Fields[0]) != "z" {
		t.Error("fields should be views over the input buffer, not copies")
	}
}
