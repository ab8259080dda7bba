package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Kind is the value type inferred for a column when the source is read
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// missingMarkers are the cell texts read as a missing value
var missingMarkers = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true,
	"-1.#QNAN": true, "-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true,
	"<NA>": true, "N/A": true, "NA": true, "NULL": true, "NaN": true,
	"None": true, "n/a": true, "nan": true, "null": true,
}

// IsMissing reports whether a cell holds no value
func IsMissing(cell string) bool {
	return missingMarkers[cell]
}

func parseInt(cell string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
	return v, err == nil
}

func parseFloat(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out of range still parses to ±Inf
		if errors.Is(err, strconv.ErrRange) {
			return v, true
		}
		return 0, false
	}
	return v, true
}

func parseBool(cell string) (bool, bool) {
	switch strings.TrimSpace(cell) {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

// inferKinds picks the narrowest kind holding every non-missing cell of each
// column. A column of integers with a missing cell becomes float, a column with
// no value at all is float.
func inferKinds(columns int, rows []Row) []Kind {
	kinds := make([]Kind, columns)
	for col := range kinds {
		kinds[col] = inferKind(rows, col)
	}
	return kinds
}

func inferKind(rows []Row, col int) Kind {
	allInt, allFloat, allBool := true, true, true
	missing, present := false, false

	for _, row := range rows {
		cell := row.Values[col]
		if IsMissing(cell) {
			missing = true
			continue
		}
		present = true
		if allInt {
			_, allInt = parseInt(cell)
		}
		if allFloat {
			_, allFloat = parseFloat(cell)
		}
		if allBool {
			_, allBool = parseBool(cell)
		}
		if !allInt && !allFloat && !allBool {
			return KindString
		}
	}

	switch {
	case !present:
		return KindFloat
	case allInt && !missing:
		return KindInt
	case allInt || allFloat:
		return KindFloat
	case allBool:
		return KindBool
	default:
		return KindString
	}
}

// canonical returns the text a cell compares by: parsed numbers compare by
// value, missing cells all compare equal.
func canonical(kind Kind, cell string) string {
	if IsMissing(cell) {
		return "\x00missing"
	}
	switch kind {
	case KindInt:
		if v, ok := parseInt(cell); ok {
			return strconv.FormatInt(v, 10)
		}
	case KindFloat:
		if v, ok := parseFloat(cell); ok {
			if math.IsNaN(v) {
				return "\x00missing"
			}
			return pyFloat(v)
		}
	case KindBool:
		if v, ok := parseBool(cell); ok {
			return strconv.FormatBool(v)
		}
	}
	return cell
}
