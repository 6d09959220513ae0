package core

// convert.go turns raw cells into the values the lookup works with.
//
// Cells come from hand-maintained exports and carry the usual artifacts:
//   - Excel formula prefixes (="value") and, on ids and numbers, stray quotes
//   - Null placeholders written by other tools ("NaN", "NULL", "#N/A")
//   - Currency symbols, thousands separators, accounting negatives
//   - Integer ids exported as floats ("1042.0")
//
// All conversions treat a placeholder the same as an empty cell.

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// integerKeyRegex matches integer key text, optionally written as a float:
// "1042", "001042", "1042.0", "+7.00".
var integerKeyRegex = regexp.MustCompile(`^([+-]?)(\d+)(\.0+)?$`)

// absentTokens are the null placeholders other tools write into exports.
// Matching is exact-case: "NaN" and "NULL" are placeholders, while "Nan"
// and "Na" are names.
var absentTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// unwrapFormula strips the Excel text-formula wrapper: ="00123" -> 00123.
func unwrapFormula(s string) string {
	if len(s) >= 3 && strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		return s[2 : len(s)-1]
	}
	return s
}

// CleanCell removes common CSV artifacts from a key or numeric cell:
// - Trims whitespace
// - Removes Excel formula prefix (="..." or =...)
// - Removes surrounding quotes
//
// Text cells go through ToText instead, which keeps quotes and '='.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if u := unwrapFormula(s); u != s {
		s = u
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// IsAbsent reports whether a trimmed cell holds no value.
func IsAbsent(s string) bool {
	return absentTokens[s]
}

// ToText trims a cell, unwraps ="..." and maps null placeholders to "".
// Other characters are kept as written.
func ToText(s string) string {
	s = strings.TrimSpace(s)
	if IsAbsent(s) {
		return ""
	}
	return strings.TrimSpace(unwrapFormula(s))
}

// NormalizeKey returns the comparable form of an id cell. Integer ids
// compare by value: "1042.0", "01042" and "+1042" all become "1042".
func NormalizeKey(s string) string {
	s = CleanCell(s)
	if IsAbsent(s) {
		return ""
	}
	m := integerKeyRegex.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	digits := strings.TrimLeft(m[2], "0")
	if digits == "" {
		return "0"
	}
	if m[1] == "-" {
		return "-" + digits
	}
	return digits
}

// ToDecimal parses a money or quantity cell.
// Handles currency symbols, thousands separators, and accounting format
// (parentheses for negative). Absent values yield Valid=false.
func ToDecimal(s string) (decimal.NullDecimal, error) {
	s = CleanCell(s)
	if IsAbsent(s) {
		return decimal.NullDecimal{}, nil
	}
	raw := s

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "\u20ac", "") // Euro
	s = strings.ReplaceAll(s, "\u00a3", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// FormatDecimal renders a nullable decimal for display; absent is "".
func FormatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Cell returns the raw value of column in row, or "" when the column is
// missing from the header or the row is short.
func Cell(row []string, idx HeaderIndex, column string) string {
	i, ok := idx[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
