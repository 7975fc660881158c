package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quote/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"symbol":        "AAPL",
			"price":         187.5,
			"changePercent": 1.2,
			"volume":        52000000,
			"avgVolume":     48000000,
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	snapshot, err := client.GetSnapshot(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetSnapshot returned error: %v", err)
	}

	if snapshot.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", snapshot.Symbol)
	}
	if snapshot.Price != 187.5 {
		t.Errorf("price = %v, want 187.5", snapshot.Price)
	}
	if snapshot.ChangePct != 1.2 {
		t.Errorf("changePercent = %v, want 1.2", snapshot.ChangePct)
	}
}

func TestGetSnapshot_CachesWithinTTL(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		json.NewEncoder(w).Encode(map[string]interface{}{"symbol": "MSFT", "price": 410.0})
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL), WithCacheTTL(time.Minute, time.Minute))

	for i := 0; i < 3; i++ {
		if _, err := client.GetSnapshot(context.Background(), "MSFT"); err != nil {
			t.Fatalf("GetSnapshot returned error: %v", err)
		}
	}

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("upstream calls = %d, want 1 (cache should absorb repeats)", got)
	}
}

func TestGetNews_ConvertsEpochTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit param = %q, want 5", got)
		}
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"headline": "AAPL earnings beat", "source": "Reuters", "sentiment": 0.6, "datetime": 1748865600},
			{"headline": "Undated wire item", "source": "CNBC", "sentiment": 0.0, "datetime": 0},
		})
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))
	news, err := client.GetNews(context.Background(), "AAPL", 5)
	if err != nil {
		t.Fatalf("GetNews returned error: %v", err)
	}

	if len(news) != 2 {
		t.Fatalf("expected 2 items, got %d", len(news))
	}
	want := time.Unix(1748865600, 0).UTC()
	if !news[0].PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v", news[0].PublishedAt, want)
	}
	if !news[1].PublishedAt.IsZero() {
		t.Errorf("undated article should keep zero time, got %v", news[1].PublishedAt)
	}
}

func TestGet_ErrorStatusReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "symbol not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))
	_, err := client.GetSnapshot(context.Background(), "NOPE")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError in chain, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
}

func TestGetMarketContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/market/context" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"vixLevel":   14.2,
			"volatility": "LOW",
			"trend":      "BULLISH",
			"breadth":    "ADVANCING",
		})
	}))
	defer srv.Close()

	client := NewClient("", WithBaseURL(srv.URL))
	market, err := client.GetMarketContext(context.Background())
	if err != nil {
		t.Fatalf("GetMarketContext returned error: %v", err)
	}
	if market.VIXLevel != 14.2 {
		t.Errorf("vixLevel = %v, want 14.2", market.VIXLevel)
	}
	if market.Trend != "BULLISH" {
		t.Errorf("trend = %v, want BULLISH", market.Trend)
	}
}
