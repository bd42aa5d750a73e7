// core/anno/rewrite.go
package anno

import "vepanno-core/cols"

// DefaultKeyField is the 0-based pipe-delimited sub-field holding the
// lookup key. Sub-field 4 is the Gene column of VEP's default
// "Allele|Consequence|IMPACT|SYMBOL|Gene|..." CSQ format. The position
// is an assumption about the upstream annotator, not something the
// value itself declares, so callers should resolve it against the
// header's Format declaration when one is available.
const DefaultKeyField = 4

// Rewriter appends one mapping-table slot to every transcript of a
// composite CSQ value. It owns reusable scratch state (the two split
// lists and the output buffer), so it must not be shared between
// goroutines; each worker gets its own Rewriter over a shared Table.
type Rewriter struct {
	table    *Table
	keyField int

	transcripts cols.List // comma-level spans over the input field
	subs        cols.List // pipe-level spans over one transcript
	out         []byte
}

// NewRewriter returns a Rewriter looking keys up at the given 0-based
// sub-field index; a negative index selects DefaultKeyField.
func NewRewriter(table *Table, keyField int) *Rewriter {
	if keyField < 0 {
		keyField = DefaultKeyField
	}
	return &Rewriter{table: table, keyField: keyField}
}

// KeyField returns the 0-based sub-field index used for lookups.
func (rw *Rewriter) KeyField() int { return rw.keyField }

// Rewrite returns field with exactly one extra pipe-delimited slot per
// transcript. The slot holds the table value when the key sub-field
// matched and stays empty otherwise, so the output arity is fixed
// regardless of hit rate. An empty field is one empty transcript and
// rewrites to "|".
//
// The returned slice aliases the Rewriter's internal buffer and is only
// valid until the next Rewrite call.
func (rw *Rewriter) Rewrite(field []byte) []byte {
	tr := cols.Split(field, ',', &rw.transcripts)

	// Worst case: every transcript gains a separator and the longest
	// value in the table. Over-allocation is fine, truncation is not.
	need := len(field) + tr.N()*(rw.table.MaxValueLen()+2)
	if cap(rw.out) < need {
		rw.out = make([]byte, 0, need)
	}
	out := rw.out[:0]

	for i, transcript := range tr.Fields {
		out = append(out, transcript...)
		out = append(out, '|')

		// The pipe-level spans alias the comma-level span above; they
		// are consumed here, before the next iteration reuses the list.
		sub := cols.Split(transcript, '|', &rw.subs)
		if rw.keyField < sub.N() {
			if key := sub.Fields[rw.keyField]; len(key) > 0 {
				if v, ok := rw.table.Lookup(key); ok {
					out = append(out, v...)
				}
			}
		}
		if i < tr.N()-1 {
			out = append(out, ',')
		}
	}
	rw.out = out
	return out
}
