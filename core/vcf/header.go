// core/vcf/header.go
package vcf

import (
	"fmt"
	"io"
	"strings"
)

const (
	infoPrefix = "##INFO=<"
	descPrefix = `Description="`

	// FormatMarker introduces the sub-field declaration inside an INFO
	// description, e.g. Description="... Format: Allele|Consequence|...".
	FormatMarker = "Format: "
)

// Header holds the meta lines of a VCF up to and including the #CHROM
// column line, in input order.
type Header struct {
	Lines []string

	csq int // index into Lines of the CSQ INFO declaration, -1 if absent
}

// InfoID extracts the ID attribute of an ##INFO meta line.
func InfoID(line string) (string, bool) {
	if !strings.HasPrefix(line, infoPrefix) {
		return "", false
	}
	rest := line[len(infoPrefix):]
	for rest != "" {
		if strings.HasPrefix(rest, "ID=") {
			end := strings.IndexAny(rest[3:], ",>")
			if end < 0 {
				return rest[3:], true
			}
			return rest[3 : 3+end], true
		}
		next := strings.IndexByte(rest, ',')
		if next < 0 {
			break
		}
		rest = rest[next+1:]
	}
	return "", false
}

// AnnotateDescription appends a pipe-separated field name to the
// Format declaration of a quoted description string: `... Format: A|B"`
// becomes `... Format: A|B|name"`. A description without the marker is
// returned unchanged.
func AnnotateDescription(desc, name string) string {
	if !strings.Contains(desc, FormatMarker) {
		return desc
	}
	desc = strings.TrimSuffix(desc, `"`)
	return desc + "|" + name + `"`
}

// FormatFields returns the sub-field names declared by the Format
// marker of a description, or nil when the marker is absent.
func FormatFields(desc string) []string {
	i := strings.Index(desc, FormatMarker)
	if i < 0 {
		return nil
	}
	spec := strings.TrimSuffix(desc[i+len(FormatMarker):], `"`)
	fields := strings.Split(spec, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// descriptionBounds locates the quoted Description value (quotes
// included) inside a meta line.
func descriptionBounds(line string) (start, end int, ok bool) {
	i := strings.Index(line, descPrefix)
	if i < 0 {
		return 0, 0, false
	}
	start = i + len(descPrefix) - 1 // include the opening quote
	end = strings.LastIndex(line, `"`) + 1
	if end <= start+1 {
		return 0, 0, false
	}
	return start, end, true
}

// HasInfo reports whether the header declares the given INFO key.
func (h *Header) HasInfo(id string) bool {
	if id == "CSQ" {
		return h.csq >= 0
	}
	for _, l := range h.Lines {
		if got, ok := InfoID(l); ok && got == id {
			return true
		}
	}
	return false
}

// InfoDescription returns the quoted Description value of the given
// INFO declaration.
func (h *Header) InfoDescription(id string) (string, bool) {
	line, ok := h.infoLine(id)
	if !ok {
		return "", false
	}
	s, e, ok := descriptionBounds(h.Lines[line])
	if !ok {
		return "", false
	}
	return h.Lines[line][s:e], true
}

// InfoFormatFields returns the sub-field names declared by the Format
// marker of the given INFO description.
func (h *Header) InfoFormatFields(id string) []string {
	desc, ok := h.InfoDescription(id)
	if !ok {
		return nil
	}
	return FormatFields(desc)
}

// AnnotateInfo rewrites the given INFO declaration in place, extending
// its Format declaration with name. It reports whether anything
// changed; a header without the declaration, without a Description, or
// without a Format marker is left as-is.
func (h *Header) AnnotateInfo(id, name string) bool {
	line, ok := h.infoLine(id)
	if !ok {
		return false
	}
	s, e, ok := descriptionBounds(h.Lines[line])
	if !ok {
		return false
	}
	desc := h.Lines[line][s:e]
	patched := AnnotateDescription(desc, name)
	if patched == desc {
		return false
	}
	h.Lines[line] = h.Lines[line][:s] + patched + h.Lines[line][e:]
	return true
}

func (h *Header) infoLine(id string) (int, bool) {
	if id == "CSQ" {
		if h.csq < 0 {
			return 0, false
		}
		return h.csq, true
	}
	for i, l := range h.Lines {
		if got, ok := InfoID(l); ok && got == id {
			return i, true
		}
	}
	return 0, false
}

// WriteTo writes the header lines, newline-terminated, to w.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, l := range h.Lines {
		m, err := fmt.Fprintln(w, l)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
