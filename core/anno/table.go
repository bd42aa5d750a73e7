// core/anno/table.go
package anno

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"vepanno-core/cols"
)

// ErrNoRows is returned when a mapping table contains no usable rows.
// Callers treat it as fatal: an empty table means the annotation run
// cannot do anything useful.
var ErrNoRows = errors.New("no usable rows")

// Entry is one mapping-table row: a lookup key and the text appended to
// a transcript when the key matches.
type Entry struct {
	Key   string
	Value string
}

// Table is a key-sorted mapping table. Read-only after ReadTable and
// safe for concurrent lookups.
type Table struct {
	entries  []Entry
	maxValue int
}

// LoadTable reads and sorts the tab-separated mapping table at path.
func LoadTable(path string) (*Table, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapping table: %w", err)
	}
	defer func() { _ = fh.Close() }()

	t, err := ReadTable(fh)
	if err != nil {
		return nil, fmt.Errorf("mapping table %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses tab-separated (key, value) rows from r and returns
// them sorted by key. Rows with fewer than two non-empty columns are
// skipped; extra columns are ignored. An input yielding zero rows is an
// error (ErrNoRows).
func ReadTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	entries := make([]Entry, 0, 1024)
	maxValue := 0
	var fields cols.List
	for sc.Scan() {
		line := sc.Bytes()
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		key, value, ok := firstTwoColumns(cols.Split(line, '\t', &fields))
		if !ok {
			continue
		}
		entries = append(entries, Entry{Key: string(key), Value: string(value)})
		if len(value) > maxValue {
			maxValue = len(value)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoRows
	}

	// Stable sort pins the duplicate-key tie-break: Lookup returns the
	// leftmost match, i.e. the earliest input row among equal keys.
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return &Table{entries: entries, maxValue: maxValue}, nil
}

// firstTwoColumns returns the first two non-empty tokens, matching the
// column semantics of strtok-style tokenizers where adjacent delimiters
// do not produce empty columns.
func firstTwoColumns(l *cols.List) (key, value []byte, ok bool) {
	for _, f := range l.Fields {
		if len(f) == 0 {
			continue
		}
		if key == nil {
			key = f
			continue
		}
		return key, f, true
	}
	return nil, nil, false
}

// Len returns the number of usable rows loaded.
func (t *Table) Len() int { return len(t.entries) }

// MaxValueLen returns the length of the longest value in the table.
func (t *Table) MaxValueLen() int { return t.maxValue }

// Lookup binary-searches for key and returns the matched value. On
// duplicate keys the leftmost entry in sort order wins.
func (t *Table) Lookup(key []byte) (string, bool) {
	k := string(key)
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Key >= k })
	if i < len(t.entries) && t.entries[i].Key == k {
		return t.entries[i].Value, true
	}
	return "", false
}
