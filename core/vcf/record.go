// core/vcf/record.go
package vcf

import "bytes"

// infoColumn is the 0-based index of the INFO column in a VCF data
// line (CHROM POS ID REF ALT QUAL FILTER INFO ...).
const infoColumn = 7

// infoBounds returns the start and end offsets of the INFO column.
func infoBounds(line []byte) (int, int, bool) {
	start, col := 0, 0
	for i := 0; i <= len(line); i++ {
		if i == len(line) || line[i] == '\t' {
			if col == infoColumn {
				return start, i, true
			}
			col++
			start = i + 1
		}
	}
	return 0, 0, false
}

// infoValueBounds locates the value of a KEY=VALUE entry inside the
// INFO text. Flag entries (no '=') never match.
func infoValueBounds(info []byte, key string) (int, int, bool) {
	for i := 0; i <= len(info); {
		j := i + len(info[i:])
		if semi := bytes.IndexByte(info[i:], ';'); semi >= 0 {
			j = i + semi
		}
		entry := info[i:j]
		if eq := bytes.IndexByte(entry, '='); eq >= 0 && string(entry[:eq]) == key {
			return i + eq + 1, j, true
		}
		i = j + 1
	}
	return 0, 0, false
}

// InfoValue returns the value of the given INFO key as a view into
// line. ok is false for lines without an INFO column or without the
// key; an empty value (KEY=) is returned as an empty slice with ok
// true.
func InfoValue(line []byte, key string) ([]byte, bool) {
	s, e, ok := infoBounds(line)
	if !ok {
		return nil, false
	}
	vs, ve, ok := infoValueBounds(line[s:e], key)
	if !ok {
		return nil, false
	}
	return line[s+vs : s+ve], true
}

// ReplaceInfoValue returns a newly allocated copy of line with the
// value of the given INFO key replaced by val, leaving every other
// entry and column untouched. When the key is absent the original line
// is returned unchanged with ok false.
func ReplaceInfoValue(line []byte, key string, val []byte) ([]byte, bool) {
	s, e, ok := infoBounds(line)
	if !ok {
		return line, false
	}
	vs, ve, ok := infoValueBounds(line[s:e], key)
	if !ok {
		return line, false
	}
	out := make([]byte, 0, len(line)-(ve-vs)+len(val))
	out = append(out, line[:s+vs]...)
	out = append(out, val...)
	out = append(out, line[s+ve:]...)
	return out, true
}
