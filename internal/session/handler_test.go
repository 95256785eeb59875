package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestSessionHandler(t *testing.T) (*Handler, *Store) {
	store := newTestStore(t)
	return NewHandler(store, testLogger()), store
}

func TestSessionHandler_RegisterRoutes(t *testing.T) {
	h, _ := newTestSessionHandler(t)
	e := echo.New()
	g := e.Group("/api")

	h.RegisterRoutes(g)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Path] = true
	}
	expected := []string{"/api/sessions", "/api/sessions/:id", "/api/search", "/api/stats"}
	for _, path := range expected {
		if !routePaths[path] {
			t.Errorf("expected route %s to be registered", path)
		}
	}
}

func TestSessionHandler_List(t *testing.T) {
	h, store := newTestSessionHandler(t)
	ctx := context.Background()
	store.Save(ctx, sampleRecord("first"))
	store.Save(ctx, sampleRecord("second"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Sessions []Record `json:"sessions"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Count != 2 || len(body.Sessions) != 2 {
		t.Errorf("count = %d, sessions = %d, want 2", body.Count, len(body.Sessions))
	}
}

func TestSessionHandler_List_InvalidLimit(t *testing.T) {
	h, _ := newTestSessionHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?limit=abc", nil)
	rec := httptest.NewRecorder()

	err := h.List(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected error for invalid limit")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Code)
	}
}

func TestSessionHandler_Get(t *testing.T) {
	h, store := newTestSessionHandler(t)
	r := sampleRecord("a blue sky")
	store.Save(context.Background(), r)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+r.ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got Record
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != r.ID || got.Transcript != "a blue sky" {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	h, _ := newTestSessionHandler(t)
	e := echo.New()

	for _, id := range []string{"sketch_missing", SentinelID} {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := h.Get(c)
		if err == nil {
			t.Fatalf("%s: expected error", id)
		}
		httpErr := err.(*echo.HTTPError)
		if httpErr.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", id, httpErr.Code)
		}
	}
}

func TestSessionHandler_Search(t *testing.T) {
	h, store := newTestSessionHandler(t)
	store.Save(context.Background(), sampleRecord("a red barn at sunset"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=barn", nil)
	rec := httptest.NewRecorder()

	if err := h.Search(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Query   string   `json:"query"`
		Results []Record `json:"results"`
		Count   int      `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Query != "barn" || body.Count != 1 {
		t.Errorf("query = %q, count = %d", body.Query, body.Count)
	}
}

func TestSessionHandler_Search_MissingQuery(t *testing.T) {
	h, _ := newTestSessionHandler(t)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	rec := httptest.NewRecorder()

	err := h.Search(e.NewContext(req, rec))
	if err == nil {
		t.Fatal("expected error for missing query")
	}
	httpErr := err.(*echo.HTTPError)
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Code)
	}
}

func TestSessionHandler_Stats(t *testing.T) {
	h, store := newTestSessionHandler(t)
	store.Save(context.Background(), sampleRecord("one"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()

	if err := h.Stats(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		TotalSessions     int64 `json:"total_sessions"`
		DatabaseConnected bool  `json:"database_connected"`
		CacheConnected    bool  `json:"cache_connected"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.TotalSessions != 1 {
		t.Errorf("total = %d, want 1", body.TotalSessions)
	}
	if !body.DatabaseConnected {
		t.Error("database should be reported connected")
	}
	if body.CacheConnected {
		t.Error("cache should be reported disconnected")
	}
}
