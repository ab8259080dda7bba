package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lineWidth is the width rows are wrapped at when formatted as a matrix
const lineWidth = 75

// CellRepr renders one cell the way it prints inside a mixed-type matrix:
// strings quoted, numbers in their shortest form, missing cells as nan.
func CellRepr(kind Kind, cell string) string {
	if IsMissing(cell) {
		return "nan"
	}
	switch kind {
	case KindInt:
		if v, ok := parseInt(cell); ok {
			return strconv.FormatInt(v, 10)
		}
	case KindFloat:
		if v, ok := parseFloat(cell); ok {
			return pyFloat(v)
		}
	case KindBool:
		if v, ok := parseBool(cell); ok {
			if v {
				return "True"
			}
			return "False"
		}
	}
	return pyString(cell)
}

// FormatMatrix renders rows as a bracketed matrix, one row per line:
//
//	[['Perris' 'California' 27.9]
//	 ['Mobile' 'Alabama' 38.2]]
//
// Rows longer than the line width wrap onto lines indented by two spaces.
// Cells are typed by the table's column kinds.
func (t *Table) FormatMatrix(rows []Row) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		words := make([]string, len(row.Values))
		for col, cell := range row.Values {
			words[col] = CellRepr(t.kind(col), cell)
		}
		lines[i] = formatRow(words)
	}
	return "[" + strings.Join(lines, "\n ") + "]"
}

// formatRow lays out one row, wrapping before a word that would pass the
// last usable column
func formatRow(words []string) string {
	const indent = "  "
	// the outer and inner closing brackets
	width := lineWidth - 2

	var s strings.Builder
	line := indent
	for i, word := range words {
		lineLen := utf8.RuneCountInString(line)
		if lineLen+utf8.RuneCountInString(word) > width && lineLen > len(indent) {
			s.WriteString(strings.TrimRight(line, " "))
			s.WriteString("\n")
			line = indent
		}
		line += word
		if i < len(words)-1 {
			line += " "
		}
	}
	s.WriteString(line)

	return "[" + s.String()[len(indent):] + "]"
}

// pyFloat formats v in the shortest round-trip form, fixed notation for
// exponents in [-4, 16) and scientific otherwise
func pyFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}

	fixed := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(fixed, '.') {
		fixed += ".0"
	}
	return fixed
}

// pyString quotes s with single quotes, or double quotes when s contains a
// single quote and no double quote. Unprintable runes are escaped.
func pyString(s string) string {
	quote := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		quote = '"'
	}

	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x7f || unicode.IsPrint(r):
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
