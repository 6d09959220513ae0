package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseCSV reads a comma-separated table with a header row.
// A leading BOM is dropped and invalid UTF-8 is replaced before parsing.
func ParseCSV(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(cleanReader(r))
	// Ragged rows are padded or truncated to the header width below.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	first, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("invalid csv header: %w", err)
	}
	header = NormalizeHeaders(first)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("invalid csv: %w", err)
		}
		rows = append(rows, fitRow(record, len(header)))
	}
	return header, rows, nil
}

// ParseWorkbook reads the first sheet of an xlsx workbook; its first row is
// the header.
func ParseWorkbook(r io.Reader) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("invalid workbook: no sheets found")
	}
	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid workbook: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, errors.New("empty file: no header row")
	}

	header = NormalizeHeaders(all[0])
	for _, record := range all[1:] {
		if isBlankRecord(record) {
			continue
		}
		rows = append(rows, fitRow(record, len(header)))
	}
	return header, rows, nil
}

// NormalizeHeaders trims and lowercases header names. Blank names become
// unnamed_a, unnamed_b, ... (spreadsheet column letters, counted over blanks only).
func NormalizeHeaders(header []string) []string {
	normalized := make([]string, len(header))
	blanks := 0
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			h = "unnamed_" + strings.ToLower(columnLetters(blanks))
			blanks++
		}
		normalized[i] = h
	}
	return normalized
}

// columnLetters converts a 0-based index to spreadsheet letters: 0 -> A, 25 -> Z, 26 -> AA.
func columnLetters(index int) string {
	result := ""
	index++
	for index > 0 {
		index--
		result = string(rune('A'+index%26)) + result
		index /= 26
	}
	return result
}

// fitRow pads short records with empty cells and drops overflow cells.
func fitRow(record []string, width int) []string {
	row := make([]string, width)
	copy(row, record)
	return row
}

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
