// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/menuroulette/internal/catalog"
	"github.com/tomtom215/menuroulette/internal/clock"
	"github.com/tomtom215/menuroulette/internal/funnel"
	"github.com/tomtom215/menuroulette/internal/models"
	"github.com/tomtom215/menuroulette/internal/preferences"
	"github.com/tomtom215/menuroulette/internal/resolver"
)

const fixtureYAML = `
categories:
  - id: korean
    name: Korean
    price: medium
    items:
      - {name: Kimchi stew, tags: [spicy, soup]}
      - {name: Bulgogi, tags: [meat, sweet]}
  - id: chinese
    name: Chinese
    price: medium
    items:
      - {name: Mapo tofu, tags: [spicy]}
  - id: pizza
    name: Pizza
    price: medium
    items:
      - {name: Margherita, tags: [cheese]}
  - id: cafe
    name: Cafe
    price: low
    items:
      - {name: Cake, tags: [sweet, cream]}
time_weights:
  lunch: [korean, cafe]
`

// envelope is the decoded response with raw data for per-test decoding.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

type testServer struct {
	handler   http.Handler
	store     *preferences.Store
	persister *preferences.MemoryPersister
	sessions  *funnel.Registry
}

type serverOption func(*ChiMiddlewareConfig, *HandlerConfig)

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	cat, err := catalog.Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	clk := clock.NewFixed(time.Date(2026, 10, 14, 12, 30, 0, 0, time.UTC))
	p := preferences.NewMemoryPersister()
	store, err := preferences.Open(context.Background(), p, preferences.Options{Clock: clk})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	sessions := funnel.NewRegistry(funnel.RunnerConfig{
		Catalog: cat,
		Store:   store,
		RNG:     resolver.Fixed(0),
		Clock:   clk,
	}, funnel.RegistryConfig{TTL: time.Hour, MaxEntries: 100})
	t.Cleanup(sessions.Close)

	mwCfg := NewChiMiddlewareConfig([]string{"*"}, 1000, time.Minute, true)
	hCfg := HandlerConfig{Catalog: cat, Sessions: sessions, Store: store}
	for _, opt := range opts {
		opt(mwCfg, &hCfg)
	}

	router := NewRouter(NewHandler(hCfg), NewChiMiddleware(mwCfg))
	return &testServer{handler: router.Setup(), store: store, persister: p, sessions: sessions}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNoContent && rec.Header().Get("Content-Type") == "application/json" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
	return v
}

// viewBody mirrors the fields of funnel.View the tests look at.
type viewBody struct {
	SessionID    string            `json:"session_id"`
	Step         string            `json:"step"`
	NoCandidates bool              `json:"no_candidates"`
	Final        *catalog.Category `json:"final"`
	Route        string            `json:"route"`
}

func (s *testServer) createSession(t *testing.T) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/v1/sessions", nil)
	if code != http.StatusCreated {
		t.Fatalf("create session = %d (%+v)", code, env.Error)
	}
	resp := decodeData[models.SessionResponse](t, env)
	if resp.SessionID == "" || resp.View.Step != funnel.StepStart {
		t.Fatalf("unexpected session response %+v", resp)
	}
	return resp.SessionID
}

func (s *testServer) event(t *testing.T, id string, ev map[string]interface{}) (int, envelope) {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/v1/sessions/"+id+"/events", ev)
}

func (s *testServer) mustEvent(t *testing.T, id string, ev map[string]interface{}) viewBody {
	t.Helper()
	code, env := s.event(t, id, ev)
	if code != http.StatusOK {
		t.Fatalf("event %v = %d (%+v)", ev, code, env.Error)
	}
	return decodeData[viewBody](t, env)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("live", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		code, env := srv.do(t, http.MethodGet, "/api/v1/health/live", nil)
		if code != http.StatusOK || env.Status != "success" {
			t.Errorf("live = %d %s", code, env.Status)
		}
	})

	t.Run("ready without storage breaker", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t)
		code, env := srv.do(t, http.MethodGet, "/api/v1/health/ready", nil)
		if code != http.StatusOK {
			t.Fatalf("ready = %d", code)
		}
		h := decodeData[models.HealthStatus](t, env)
		if h.Status != "ready" || h.StorageBreaker != "memory" || h.Categories != 4 {
			t.Errorf("health = %+v", h)
		}
	})

	t.Run("open breaker is unavailable", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, func(_ *ChiMiddlewareConfig, h *HandlerConfig) {
			h.Storage = fakeBreaker{state: stateOpen}
		})
		code, env := srv.do(t, http.MethodGet, "/api/v1/health/ready", nil)
		if code != http.StatusServiceUnavailable {
			t.Fatalf("ready = %d, want 503", code)
		}
		h := decodeData[models.HealthStatus](t, env)
		if h.Status != "degraded" || h.StorageBreaker != "open" {
			t.Errorf("health = %+v", h)
		}
	})
}

func TestCatalogEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, env := srv.do(t, http.MethodGet, "/api/v1/catalog", nil)
	if code != http.StatusOK {
		t.Fatalf("catalog = %d", code)
	}
	cat := decodeData[catalog.Catalog](t, env)
	if len(cat.Categories) != 4 || cat.Categories[0].ID != "korean" {
		t.Errorf("categories = %+v", cat.Categories)
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, env := srv.do(t, http.MethodGet, "/api/v1/nope", nil)
	if code != http.StatusNotFound || env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("got %d %+v", code, env.Error)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.do(t, http.MethodGet, "/api/v1/catalog", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics = %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("api_requests_total")) {
		t.Error("api_requests_total missing from /metrics")
	}
}

func TestRateLimitExceeded(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, func(m *ChiMiddlewareConfig, _ *HandlerConfig) {
		m.RateLimitDisabled = false
		m.RateLimitRequests = 2
		m.RateLimitWindow = time.Minute
	})
	for i := 0; i < 2; i++ {
		if code, _ := srv.do(t, http.MethodGet, "/api/v1/catalog", nil); code != http.StatusOK {
			t.Fatalf("request %d = %d", i, code)
		}
	}
	code, env := srv.do(t, http.MethodGet, "/api/v1/catalog", nil)
	if code != http.StatusTooManyRequests || env.Error == nil || env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("third request = %d %+v", code, env.Error)
	}

	// Health checks are outside the limited group.
	if code, _ := srv.do(t, http.MethodGet, "/api/v1/health/live", nil); code != http.StatusOK {
		t.Errorf("health after limit = %d", code)
	}
}

func TestRequestIDMetadata(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	rec := httptest.NewRecorder()
	srv.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Metadata.RequestID != "req-abc" || rec.Header().Get("X-Request-ID") != "req-abc" {
		t.Errorf("request id = %q / %q", env.Metadata.RequestID, rec.Header().Get("X-Request-ID"))
	}
}
