package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/orderlookup/internal/core"
	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

var (
	ann = core.Customer{CustomerID: "1", FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Phone: "555-0100", BillingAddress1: "12 Elm St", BillingState: "OH"}
	bob = core.Customer{CustomerID: "2", FirstName: "Bob", Email: "bob@x.com"}
)

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// fakeLooker answers from a fixed set of panels keyed by lowercased query.
// Queries are recorded as received.
type fakeLooker struct {
	panels  map[string][]core.CustomerPanel
	err     error
	queries []string
}

func (f *fakeLooker) Lookup(_ context.Context, query string) (core.LookupResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return core.LookupResult{}, f.err
	}
	return core.LookupResult{Query: query, Performed: query != "", Panels: f.panels[strings.ToLower(query)]}, nil
}

func newFake() *fakeLooker {
	return &fakeLooker{panels: map[string][]core.CustomerPanel{
		"lee": {core.NewPanel(ann, core.History{
			CustomerID: "1",
			State:      core.HistoryOK,
			Orders:     1,
			Rows: []core.HistoryRow{{
				OrderID: "10", Date: "2024-01-01", Status: "Shipped", Product: "Widget",
				Qty: num("2"), ItemPrice: num("20"), OrderTotal: num("20"),
			}},
		})},
		"bob": {core.NewPanel(bob, core.History{CustomerID: "2", State: core.HistoryNoOrders})},
	}}
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name   string
		result core.LookupResult
		want   []string
		empty  bool
	}{
		{name: "not performed", result: core.LookupResult{}, empty: true},
		{name: "no matches", result: core.LookupResult{Query: "zzz", Performed: true}, want: []string{core.MsgNoCustomers}},
		{
			name:   "no details",
			result: core.LookupResult{Query: "bob", Performed: true, Panels: []core.CustomerPanel{core.NewPanel(bob, core.History{State: core.HistoryNoDetails, Orders: 1})}},
			want:   []string{"Found 1 customer(s).", "== Bob (bob@x.com) ==", core.MsgNoDetails},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderResult(&buf, tt.result))
			if tt.empty {
				assert.Empty(t, buf.String())
				return
			}
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestRenderPanel_HistoryTable(t *testing.T) {
	var buf bytes.Buffer
	panel := newFake().panels["lee"][0]

	require.NoError(t, RenderPanel(&buf, panel))

	out := buf.String()
	assert.Contains(t, out, "== Ann Lee (ann@x.com) ==")
	assert.Contains(t, out, "Phone:   555-0100")
	assert.Contains(t, out, "Address: 12 Elm St, OH")
	assert.Contains(t, out, "Order History")
	upper := strings.ToUpper(out)
	for _, label := range core.HistoryColumns {
		assert.Contains(t, upper, strings.ToUpper(label))
	}
	for _, cell := range []string{"2024-01-01", "Shipped", "Widget"} {
		assert.Contains(t, out, cell)
	}
}

func TestClient_RunArgs(t *testing.T) {
	var buf bytes.Buffer
	fake := newFake()
	c := &Client{Looker: fake, Out: &buf}

	require.NoError(t, c.Run(context.Background(), strings.NewReader(""), []string{"lee"}))

	assert.Equal(t, []string{"lee"}, fake.queries)
	assert.Contains(t, buf.String(), "Found 1 customer(s).")
	assert.NotContains(t, buf.String(), Prompt)
}

func TestClient_RunInteractive(t *testing.T) {
	var buf bytes.Buffer
	fake := newFake()
	c := &Client{Looker: fake, Out: &buf}

	in := strings.NewReader("lee\n\n   \nbob\r\n  zzz \n QUIT \nlee\n")
	require.NoError(t, c.Run(context.Background(), in, nil))

	assert.Equal(t, []string{"lee", "bob", "  zzz "}, fake.queries)
	out := buf.String()
	assert.Contains(t, out, "Widget")
	assert.Contains(t, out, core.MsgNoOrders)
	assert.Contains(t, out, core.MsgNoCustomers)
}

func TestClient_RunStopsAtEOF(t *testing.T) {
	var buf bytes.Buffer
	fake := newFake()
	c := &Client{Looker: fake, Out: &buf}

	require.NoError(t, c.Run(context.Background(), strings.NewReader("lee"), nil))
	assert.Equal(t, []string{"lee"}, fake.queries)
}

func TestClient_RunReturnsLookupError(t *testing.T) {
	missing := &core.MissingDatasetError{}
	fake := &fakeLooker{err: missing}
	c := &Client{Looker: fake, Out: &bytes.Buffer{}}

	err := c.Run(context.Background(), strings.NewReader("lee\nbob\n"), nil)

	var target *core.MissingDatasetError
	require.True(t, errors.As(err, &target))
	assert.Len(t, fake.queries, 1)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		want    []string
		details bool
	}{
		{
			name: "missing data",
			err:  &core.MissingDatasetError{Missing: []dataset.Ref{{BaseFile: "Orders_WUMZTNW4SS.csv"}}},
			code: ExitMissingData,
			want: []string{"Data files not found!", "Orders_WUMZTNW4SS.csv"},
		},
		{
			name: "known error",
			err:  errors.New("orders row 3: column quantity: invalid number \"x\""),
			code: ExitError,
			want: []string{"(Code: "},
		},
		{
			name:    "unknown error shows details",
			err:     errors.New("disk on fire"),
			code:    ExitError,
			want:    []string{"(Code: ERR000)", "Details: disk on fire"},
			details: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.code, Report(&buf, tt.err))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
			if !tt.details {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}
