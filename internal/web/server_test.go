package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/orderlookup/internal/config"
	"github.com/JonMunkholm/orderlookup/internal/core"
	_ "github.com/JonMunkholm/orderlookup/internal/core/tables"
	"github.com/JonMunkholm/orderlookup/internal/dataset"
)

var fixtures = map[string]string{
	"Customers_64V94W6D22.csv": "customerid,firstname,lastname,emailaddress,phonenumber,billingaddress1,billingcity,billingstate\n" +
		"1,Ann,Lee,ann@x.com,555-0100,12 Elm St,,OH\n" +
		"2,Bob,Stone,bob@x.com,,,,\n" +
		"3,<Eve>,Lane,eve@x.com,,,,\n",
	"Orders_WUMZTNW4SS.csv": "orderid,customerid,orderdate,totalshippingcost,paymentamount,orderstatus\n" +
		"10,1,2024-01-01,0,20,Shipped\n" +
		"11,2,2024-02-01,0,7.5,Pending\n",
	"OrderDetails_WUMZTNW4SS.csv": "orderid,productname,quantity,totalprice\n" +
		"10,Widget,2,20\n",
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{RequestTimeout: time.Minute},
		Security: config.SecurityConfig{EnableCSP: true},
	}
}

func newTestServer(t *testing.T, files map[string]string, cfg *config.Config) *Server {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	loader := dataset.NewLoader(dataset.DefaultResolvers(dir, false)...)
	s := NewServer(core.NewService(loader, core.DefaultRefs()), cfg)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestSearchPage_NoQuery(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Customer History Search")
	assert.Contains(t, body, "Enter Customer Name (First or Last):")
	assert.NotContains(t, body, "customer(s)")
	assert.NotContains(t, body, core.MsgNoCustomers)
}

func TestSearchPage_Match(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/?q=lee")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Found 1 customer(s).")
	assert.Contains(t, body, "Ann Lee (ann@x.com)")
	assert.Contains(t, body, "12 Elm St, OH")
	assert.Contains(t, body, "<h3>Order History</h3>")
	assert.Contains(t, body, "<th>Item Price</th>")
	assert.Contains(t, body, "<td>Widget</td><td>2</td><td>20</td><td>20</td>")
	assert.Contains(t, body, `value="lee"`)
}

func TestSearchPage_States(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	tests := []struct {
		query string
		want  string
	}{
		{"zzz", core.MsgNoCustomers},
		{"stone", core.MsgNoDetails},
		{"lane", core.MsgNoOrders},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/?q="+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestSearchPage_EscapesData(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/?q=eve")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<Eve>")
	assert.Contains(t, rec.Body.String(), "&lt;Eve&gt; Lane")
}

func TestSearchPage_MissingData(t *testing.T) {
	s := newTestServer(t, map[string]string{
		"Customers_64V94W6D22.csv": fixtures["Customers_64V94W6D22.csv"],
	}, testConfig())

	rec := get(t, s, "/?q=lee")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Data files not found!")
	assert.Contains(t, body, "Orders_WUMZTNW4SS.csv")
	assert.Contains(t, body, "OrderDetails_WUMZTNW4SS.csv")
	assert.NotContains(t, body, "<code>Customers_64V94W6D22.csv</code>")
	assert.Contains(t, body, "<code>.zip</code>")
}

func TestLookupAPI(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/api/customers?q=LEE")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result core.LookupResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Performed)
	require.Len(t, result.Panels, 1)
	assert.Equal(t, "Ann Lee", result.Panels[0].FullName)
	require.Len(t, result.Panels[0].History.Rows, 1)
	assert.Equal(t, "Widget", result.Panels[0].History.Rows[0].Product)
}

func TestHistoryAPI(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/api/customers/2/history")
	require.Equal(t, http.StatusOK, rec.Code)

	var h core.History
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &h))
	assert.Equal(t, core.HistoryNoDetails, h.State)
	assert.Equal(t, 1, h.Orders)
	assert.Empty(t, h.Rows)
}

func TestHistoryAPI_NotFound(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/api/customers/99/history")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DATA006", resp.Code)
}

func TestLookupAPI_MissingData(t *testing.T) {
	s := newTestServer(t, nil, testConfig())

	rec := get(t, s, "/api/customers?q=lee")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "DATA001", resp.Code)
	assert.Len(t, resp.Missing, 3)
}

func TestStatusAPI(t *testing.T) {
	s := newTestServer(t, fixtures, testConfig())

	rec := get(t, s, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status core.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.NotEmpty(t, status.SnapshotID.String())
	require.Len(t, status.Datasets, 3)
	for _, ds := range status.Datasets {
		assert.Equal(t, "csv", ds.Format, ds.Key)
		assert.Contains(t, ds.Source, ".csv", ds.Key)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, testConfig())

	rec := get(t, s, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStaticStylesheet(t *testing.T) {
	s := newTestServer(t, nil, testConfig())

	rec := get(t, s, "/static/app.css")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "table.history")
}

func TestSecurityHeaders(t *testing.T) {
	t.Run("csp enabled", func(t *testing.T) {
		rec := get(t, newTestServer(t, nil, testConfig()), "/healthz")
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
	})

	t.Run("csp disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Security.EnableCSP = false
		rec := get(t, newTestServer(t, nil, cfg), "/healthz")
		assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	})
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Rate = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 2}
	s := newTestServer(t, nil, cfg)

	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/healthz").Code)

	rec := get(t, s, "/healthz")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "RATE001")
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := newRateLimiter(1, 20*time.Millisecond)
	defer rl.stop()

	assert.True(t, rl.allow("a"))
	assert.False(t, rl.allow("a"))
	assert.True(t, rl.allow("b"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.allow("a"))
}

func TestWantsJSON(t *testing.T) {
	tests := []struct {
		path   string
		accept string
		want   bool
	}{
		{"/api/status", "", true},
		{"/", "application/json", true},
		{"/", "text/html", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		req.Header.Set("Accept", tt.accept)
		if got := wantsJSON(req); got != tt.want {
			t.Errorf("wantsJSON(%s, %q) = %v, want %v", tt.path, tt.accept, got, tt.want)
		}
	}
}
