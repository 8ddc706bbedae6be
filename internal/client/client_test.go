package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayase-dev/otodoke/internal/contract"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/testutil"
)

func productPayload(t *testing.T) []byte {
	t.Helper()
	cal := testutil.FixedCalendar()
	p := builtProduct(t)
	view := contract.ProductViewOf(p, cal, domain.BaseLocale)
	data, err := json.Marshal(view)
	require.NoError(t, err)
	return data
}

func builtProduct(t *testing.T) *domain.Product {
	t.Helper()
	// A minimal graph is enough; the client only decodes and rebuilds.
	return &domain.Product{
		ProductID: "prd_tee",
		Title:     "フェスTシャツ",
		Schedule:  domain.NoOverride(),
		Groups:    map[string][]string{"color": {"TEE-RED", "TEE-BLUE"}},
		SKUs: map[string]domain.SKU{
			"TEE-RED":  {ID: 1, Code: "TEE-RED", Name: "レッド", SortNumber: 10},
			"TEE-BLUE": {ID: 2, Code: "TEE-BLUE", Name: "ブルー", SortNumber: 20, Schedule: domain.ExplicitNumeric(20260615)},
		},
		Variants: []*domain.Variant{
			{
				VariantID: "var_plain",
				Groups:    []domain.SKUGroup{{Code: "color", Label: "カラー", Candidates: []string{"TEE-RED", "TEE-BLUE"}}},
			},
		},
	}
}

func TestFetchProductRebuildsGraph(t *testing.T) {
	payload := productPayload(t)
	var gotLang atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLang.Store(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}))
	defer srv.Close()

	c := New(srv.URL, domain.BaseLocale)
	view, err := c.FetchProduct(context.Background(), "prd_tee")
	require.NoError(t, err)
	assert.Equal(t, "ja", gotLang.Load())

	p := view.ToDomain()
	assert.Equal(t, "prd_tee", p.ProductID)
	require.Len(t, p.Variants, 1)
	require.Len(t, p.Variants[0].Groups, 1)
	assert.Equal(t, []string{"TEE-RED", "TEE-BLUE"}, p.Variants[0].Groups[0].Candidates)

	blue, ok := p.SKUByCode("TEE-BLUE")
	require.True(t, ok)
	require.True(t, blue.Schedule.Explicit)
	assert.Equal(t, int64(20260615), blue.Schedule.Schedule.Numeric)
}

func TestFetchProductNotFoundIsPermanent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"product not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, domain.BaseLocale)
	_, err := c.FetchProduct(context.Background(), "prd_nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var transient *TransientFetchError
	assert.False(t, errors.As(err, &transient))
}

func TestFetchDeliveryPassesFilter(t *testing.T) {
	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		w.Write([]byte(`{"current":{"numeric":20260604,"text":"x"},"skus":[]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, domain.BaseLocale)
	report, err := c.FetchDelivery(context.Background(), "prd_tee", true)
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery.Load())
	assert.Equal(t, int64(20260604), report.Current.Numeric)

	_, err = c.FetchDelivery(context.Background(), "prd_tee", false)
	require.NoError(t, err)
	assert.Equal(t, "filter=false", gotQuery.Load())
}

func TestFetchProductServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, domain.BaseLocale)
	_, err := c.FetchProduct(context.Background(), "prd_tee")

	var transient *TransientFetchError
	require.ErrorAs(t, err, &transient)
	assert.Contains(t, transient.Error(), "status 500")
}

func TestFetchProductConnectionRefusedIsTransient(t *testing.T) {
	c := New("http://127.0.0.1:1", domain.BaseLocale)
	_, err := c.FetchProduct(context.Background(), "prd_tee")

	var transient *TransientFetchError
	assert.ErrorAs(t, err, &transient)
}

func TestLoaderRetriesTransientFailures(t *testing.T) {
	payload := productPayload(t)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	loader := NewLoader(New(srv.URL, domain.BaseLocale), time.Millisecond)
	p, err := loader.Load(context.Background(), "prd_tee")
	require.NoError(t, err)
	assert.Equal(t, "prd_tee", p.ProductID)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestLoaderStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	loader := NewLoader(New(srv.URL, domain.BaseLocale), 5*time.Millisecond)
	_, err := loader.Load(ctx, "prd_tee")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoaderDropsSupersededResult(t *testing.T) {
	payload := productPayload(t)
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/prd_slow" {
			<-release
		}
		w.Write(payload)
	}))
	defer srv.Close()

	loader := NewLoader(New(srv.URL, domain.BaseLocale), time.Millisecond)
	slow := loader.LoadAsync(context.Background(), "prd_slow")
	time.Sleep(10 * time.Millisecond)

	// A newer load supersedes the in-flight one.
	_, err := loader.Load(context.Background(), "prd_tee")
	require.NoError(t, err)

	close(release)
	result := <-slow
	assert.ErrorIs(t, result.Err, context.Canceled)
}
