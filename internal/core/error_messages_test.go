package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "bare not found maps to missing data",
			err:         dataset.ErrNotFound,
			wantCode:    "DATA001",
			wantMessage: "Data files not found",
		},
		{
			name:        "multiple zip members",
			err:         errors.New("load orders via zip: multiple files found in zip archive data/Orders.zip (2), expected exactly one"),
			wantCode:    "DATA002",
			wantMessage: "A zip archive holds more than one file",
		},
		{
			name:        "corrupt zip",
			err:         errors.New("invalid zip archive data/Orders.zip: zip: not a valid zip file"),
			wantCode:    "DATA003",
			wantMessage: "A zip archive could not be read",
		},
		{
			name:        "unknown customer",
			err:         fmt.Errorf("%w: 42", ErrCustomerNotFound),
			wantCode:    "DATA006",
			wantMessage: "Customer not found",
		},
		{
			name:        "invalid number",
			err:         errors.New(`order_details row 3: column quantity: invalid number "two"`),
			wantCode:    "VAL002",
			wantMessage: "Invalid number format detected",
		},
		{
			name:        "missing column",
			err:         errors.New("missing required column(s) in orders: customerid"),
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from a data file",
		},
		{
			name:        "invalid csv",
			err:         errors.New(`data/Orders.csv: invalid csv: record on line 3: bare " in non-quoted-field`),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "empty file",
			err:         errors.New("data/Orders.csv: empty file: no header row"),
			wantCode:    "FILE005",
			wantMessage: "A data file is empty",
		},
		{
			name:        "deadline",
			err:         context.DeadlineExceeded,
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("INVALID CSV header"),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestMapError_MissingDataset(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &MissingDatasetError{Missing: []dataset.Ref{
		{Name: "customers", BaseFile: "Customers_64V94W6D22.csv"},
		{Name: "orders", BaseFile: "Orders_WUMZTNW4SS.csv"},
	}})

	got := MapError(err)
	if got.Code != "DATA001" {
		t.Fatalf("MapError() code = %q, want DATA001", got.Code)
	}
	for _, want := range []string{"Customers_64V94W6D22.csv", "Orders_WUMZTNW4SS.csv", ".zip"} {
		if !strings.Contains(got.Action, want) {
			t.Errorf("MapError() action = %q, want it to mention %q", got.Action, want)
		}
	}
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Error("MissingDatasetError should match dataset.ErrNotFound")
	}
}

func TestFormatUserError(t *testing.T) {
	err := errors.New("invalid csv: wrong number of fields")
	result := FormatUserError(err)

	expected := "File is not a valid CSV (Code: FILE002). Ensure file is comma-separated with consistent quoting"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  errors.New("invalid number"),
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}
