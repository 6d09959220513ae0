package core

import (
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// ToDecimal Tests
// ----------------------------------------------------------------------------

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue string
		wantErr   bool
	}{
		// Valid: Basic numbers
		{name: "positive integer", input: "123", wantValid: true, wantValue: "123"},
		{name: "zero", input: "0", wantValid: true, wantValue: "0"},
		{name: "negative integer", input: "-456", wantValid: true, wantValue: "-456"},
		{name: "decimal number", input: "123.45", wantValid: true, wantValue: "123.45"},
		{name: "trailing zeros trimmed", input: "20.00", wantValid: true, wantValue: "20"},
		{name: "leading decimal point", input: ".99", wantValid: true, wantValue: "0.99"},
		{name: "scientific notation", input: "1.5e2", wantValid: true, wantValue: "150"},

		// Valid: Currency and formatting
		{name: "dollar sign", input: "$19.99", wantValid: true, wantValue: "19.99"},
		{name: "thousands separator", input: "1,234.50", wantValid: true, wantValue: "1234.5"},
		{name: "euro sign", input: "€5", wantValid: true, wantValue: "5"},
		{name: "accounting negative", input: "($12.00)", wantValid: true, wantValue: "-12"},
		{name: "surrounding whitespace", input: "  7  ", wantValid: true, wantValue: "7"},
		{name: "excel formula prefix", input: `="42"`, wantValid: true, wantValue: "42"},

		// Absent
		{name: "empty", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "NaN placeholder", input: "NaN", wantValid: false},
		{name: "NULL placeholder", input: "NULL", wantValid: false},
		{name: "N/A placeholder", input: "N/A", wantValid: false},

		// Invalid
		{name: "text", input: "twelve", wantErr: true},
		{name: "two decimal points", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToDecimal(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToDecimal(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToDecimal(%q) unexpected error: %v", tt.input, err)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("ToDecimal(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid && got.Decimal.String() != tt.wantValue {
				t.Errorf("ToDecimal(%q) = %s, want %s", tt.input, got.Decimal.String(), tt.wantValue)
			}
		})
	}
}

func TestToDecimal_ErrorMentionsInvalidNumber(t *testing.T) {
	_, err := ToDecimal("abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := MapError(err).Code; got != "VAL002" {
		t.Errorf("MapError(%v).Code = %q, want VAL002", err, got)
	}
}

// ----------------------------------------------------------------------------
// Text and Key Tests
// ----------------------------------------------------------------------------

func TestToText(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ann", "Ann"},
		{"  Ann  ", "Ann"},
		{"", ""},
		{"nan", ""},
		{"NaN", ""},
		{"NULL", ""},
		{"None", ""},
		{"<NA>", ""},
		{"#N/A", ""},
		{`="Lee"`, "Lee"},
		{"Nancy", "Nancy"},

		// Names and text that only look like placeholders
		{"Nan", "Nan"},
		{"Na", "Na"},
		{"Null", "Null"},
		{"Undefined", "Undefined"},
		{"#VALUE!", "#VALUE!"},

		// Quotes and '=' are part of the text
		{`Widget 6"`, `Widget 6"`},
		{`"quoted"`, `"quoted"`},
		{"O'Brien'", "O'Brien'"},
		{"=SUM deal", "=SUM deal"},
	}

	for _, tt := range tests {
		if got := ToText(tt.input); got != tt.want {
			t.Errorf("ToText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{" 1 ", "1"},
		{"1.0", "1"},
		{"1042.000", "1042"},
		{"+7.0", "7"},
		{"1.5", "1.5"},
		{"A-100", "A-100"},
		{"001", "1"},
		{"0042.0", "42"},
		{"000", "0"},
		{"-007", "-7"},
		{`="00123"`, "123"},
		{"'17'", "17"},
		{"nan", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKey(tt.input); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"value", "value"},
		{"  value  ", "value"},
		{`="00123"`, "00123"},
		{"=SUM", "SUM"},
		{`'single'`, "single"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.input); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// Header Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"CustomerID", " FirstName ", "customerid"})

	if idx["customerid"] != 0 {
		t.Errorf("customerid index = %d, want 0 (first occurrence wins)", idx["customerid"])
	}
	if idx["firstname"] != 1 {
		t.Errorf("firstname index = %d, want 1", idx["firstname"])
	}
	if len(idx) != 2 {
		t.Errorf("len(idx) = %d, want 2", len(idx))
	}
}

func TestCell(t *testing.T) {
	idx := HeaderIndex{"a": 0, "b": 1, "c": 5}
	row := []string{"x", "y"}

	if got := Cell(row, idx, "B"); got != "y" {
		t.Errorf("Cell(B) = %q, want %q", got, "y")
	}
	if got := Cell(row, idx, "missing"); got != "" {
		t.Errorf("Cell(missing) = %q, want empty", got)
	}
	if got := Cell(row, idx, "c"); got != "" {
		t.Errorf("Cell(c) on short row = %q, want empty", got)
	}
}

// ----------------------------------------------------------------------------
// ConvertRow Tests
// ----------------------------------------------------------------------------

func TestConvertRow(t *testing.T) {
	specs := []FieldSpec{
		{Name: "orderid", Type: FieldKey},
		{Name: "productname", Type: FieldText},
		{Name: "quantity", Type: FieldNumeric},
		{Name: "totalprice", Type: FieldNumeric},
	}
	idx := MakeHeaderIndex([]string{"OrderID", "ProductName", "Quantity", "TotalPrice"})

	rec, err := ConvertRow(specs, []string{"007.0", `="Widget 6""`, "2", "N/A"}, idx)
	if err != nil {
		t.Fatalf("ConvertRow() error = %v", err)
	}
	if got := rec.Text("orderid"); got != "7" {
		t.Errorf("key = %q, want %q", got, "7")
	}
	if got := rec.Text("productname"); got != `Widget 6"` {
		t.Errorf("text = %q, want %q", got, `Widget 6"`)
	}
	if q := rec.Decimal("quantity"); !q.Valid || q.Decimal.IntPart() != 2 {
		t.Errorf("quantity = %v, want 2", q)
	}
	if p := rec.Decimal("totalprice"); p.Valid {
		t.Errorf("totalprice = %v, want absent", p)
	}
	if got := rec.Text("missing"); got != "" {
		t.Errorf("unknown column = %q, want empty", got)
	}

	_, err = ConvertRow(specs, []string{"1", "Widget", "two", "3"}, idx)
	if err == nil || !strings.Contains(err.Error(), "column quantity") {
		t.Errorf("ConvertRow() error = %v, want column quantity", err)
	}
}
