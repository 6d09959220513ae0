package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

// Record is one row converted according to its dataset's FieldSpecs.
type Record struct {
	text    map[string]string
	numbers map[string]decimal.NullDecimal
}

// Text returns a FieldText or FieldKey value; "" when absent.
func (r Record) Text(name string) string {
	return r.text[name]
}

// Decimal returns a FieldNumeric value; Valid=false when absent.
func (r Record) Decimal(name string) decimal.NullDecimal {
	return r.numbers[name]
}

// ConvertRow converts the cells of row named by specs: text through ToText,
// keys through NormalizeKey and numbers through ToDecimal.
func ConvertRow(specs []FieldSpec, row []string, idx HeaderIndex) (Record, error) {
	rec := Record{
		text:    make(map[string]string, len(specs)),
		numbers: make(map[string]decimal.NullDecimal),
	}
	for _, spec := range specs {
		raw := Cell(row, idx, spec.Name)
		switch spec.Type {
		case FieldKey:
			rec.text[spec.Name] = NormalizeKey(raw)
		case FieldNumeric:
			d, err := ToDecimal(raw)
			if err != nil {
				return Record{}, fmt.Errorf("column %s: %w", spec.Name, err)
			}
			rec.numbers[spec.Name] = d
		default:
			rec.text[spec.Name] = ToText(raw)
		}
	}
	return rec, nil
}

// ValidateHeaders returns an error naming every required column of def that
// is missing from header.
func ValidateHeaders(def DatasetDefinition, idx HeaderIndex) error {
	var missing []string
	for _, spec := range def.FieldSpecs {
		if !spec.Required {
			continue
		}
		if _, ok := idx[strings.ToLower(spec.Name)]; !ok {
			missing = append(missing, spec.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required column(s) in %s: %s", def.Info.Key, strings.Join(missing, ", "))
	}
	return nil
}

// DecodeTable converts every row of t per def.FieldSpecs and builds the
// typed record with def.Decode.
// Row numbers in errors are 1-based data rows (the header is row 0).
func DecodeTable(def DatasetDefinition, t *dataset.Table) ([]any, error) {
	if def.Decode == nil {
		return nil, fmt.Errorf("dataset %s has no decoder", def.Info.Key)
	}

	idx := MakeHeaderIndex(t.Header)
	if err := ValidateHeaders(def, idx); err != nil {
		return nil, err
	}

	records := make([]any, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec, err := ConvertRow(def.FieldSpecs, row, idx)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", def.Info.Key, i+1, err)
		}
		records = append(records, def.Decode(rec))
	}
	return records, nil
}

// decodeAs decodes t and asserts every record to T.
func decodeAs[T any](def DatasetDefinition, t *dataset.Table) ([]T, error) {
	records, err := DecodeTable(def, t)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(records))
	for i, rec := range records {
		v, ok := rec.(T)
		if !ok {
			return nil, fmt.Errorf("dataset %s decoded %T, want %T", def.Info.Key, rec, v)
		}
		out[i] = v
	}
	return out, nil
}
