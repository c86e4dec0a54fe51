package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"quakewatch/internal/model"
)

func TestResolveBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hostname string
		origin   string
		want     string
	}{
		{"localhost", "http://localhost:8080", LocalBackendURL},
		{"127.0.0.1", "http://127.0.0.1:8080", LocalBackendURL},
		{"someone.github.io", "https://someone.github.io", FallbackBackendURL},
		{"dashboard.example.com", "https://dashboard.example.com", "https://dashboard.example.com"},
	}
	for _, tt := range tests {
		if got := ResolveBaseURL(tt.hostname, tt.origin); got != tt.want {
			t.Errorf("ResolveBaseURL(%q, %q) = %q, want %q", tt.hostname, tt.origin, got, tt.want)
		}
	}
}

func TestFetchRiskTransientStatuses(t *testing.T) {
	t.Parallel()

	for _, code := range []int{404, 500, 502, 503} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := NewClient(srv.URL)
		_, err := c.FetchRisk(context.Background())
		srv.Close()
		if !errors.Is(err, ErrWarmingUp) {
			t.Errorf("status %d: got %v, want ErrWarmingUp", code, err)
		}
	}
}

func TestFetchRiskUnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).FetchRisk(context.Background())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("got %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusTeapot {
		t.Errorf("status code: got %d, want %d", statusErr.Code, http.StatusTeapot)
	}
}

func TestFetchRiskDecodesSnapshot(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/risk" {
			t.Errorf("path: got %q, want /api/risk", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"risk_regions": [{"id": 0, "lat": 40.7, "lon": 29.9, "score": 7.2, "density": 15}],
			"recent_earthquakes": [{"geojson": {"type": "Point", "coordinates": [29.9, 40.7]}, "mag": 4.6, "location": "Marmara"}],
			"fault_lines": [{"name": "NAF", "coords": [[40.8, 29.0], [40.9, 30.5]]}]
		}`))
	}))
	defer srv.Close()

	snap, err := NewClient(srv.URL).FetchRisk(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.RiskRegions) != 1 || snap.RiskRegions[0].Score != 7.2 {
		t.Errorf("risk regions decoded wrong: %+v", snap.RiskRegions)
	}
	if len(snap.RecentEarthquakes) != 1 || !snap.RecentEarthquakes[0].GeoJSON.Valid() {
		t.Errorf("earthquakes decoded wrong: %+v", snap.RecentEarthquakes)
	}
	if snap.ErrorMessage() != "" {
		t.Errorf("healthy snapshot reported error %q", snap.ErrorMessage())
	}
}

func TestPredictRiskPassesThroughErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "model not trained"}`))
	}))
	defer srv.Close()

	pred, err := NewClient(srv.URL).PredictRisk(context.Background(), model.Coordinates{Lat: 41, Lon: 29}, true)
	if err != nil {
		t.Fatalf("error bodies should pass through, got %v", err)
	}
	if pred.Error != "model not trained" {
		t.Errorf("passthrough body: got %+v", pred)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status": "healthy"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Health(context.Background()); err != nil {
		t.Errorf("healthy backend: got %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	if err := NewClient(down.URL).Health(context.Background()); err == nil {
		t.Error("unhealthy backend: expected an error")
	}
}
