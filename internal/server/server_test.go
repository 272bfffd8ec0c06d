package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/todos/internal/adapter"
	"github.com/mmcdole/todos/internal/adapter/source/rest"
	"github.com/mmcdole/todos/internal/domain"
	"github.com/mmcdole/todos/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "todos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewServer(st, "localhost:0", adapter.NullLogger(), Options{})
}

func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status %q, got %q", "ok", body["status"])
	}
}

func TestHandleList_Empty(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/todos?userId=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestHandleCreate(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/todos?userId=3", `{"userId":3,"title":"  milk ","completed":false}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var item domain.Item
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if item.ID == 0 || item.UserID != 3 || item.Title != "milk" {
		t.Fatalf("unexpected item: %+v", item)
	}

	w = do(t, srv, http.MethodGet, "/todos?userId=3", "")
	var items []domain.Item
	if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("expected the created item, got %+v", items)
	}
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"list without user", http.MethodGet, "/todos", ""},
		{"list with bad user", http.MethodGet, "/todos?userId=abc", ""},
		{"create empty title", http.MethodPost, "/todos?userId=1", `{"title":"   "}`},
		{"create bad json", http.MethodPost, "/todos?userId=1", `{"title":`},
		{"create without user", http.MethodPost, "/todos", `{"title":"a"}`},
		{"update bad id", http.MethodPatch, "/todos/abc", `{"completed":true}`},
		{"update empty title", http.MethodPatch, "/todos/1", `{"title":""}`},
		{"delete bad id", http.MethodDelete, "/todos/0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, tt.method, tt.target, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)

	if w := do(t, srv, http.MethodPatch, "/todos/42", `{"completed":true}`); w.Code != http.StatusNotFound {
		t.Errorf("update: expected 404, got %d", w.Code)
	}
	if w := do(t, srv, http.MethodDelete, "/todos/42", ""); w.Code != http.StatusNotFound {
		t.Errorf("delete: expected 404, got %d", w.Code)
	}
}

type brokenRepo struct{ domain.TodoRepository }

func (brokenRepo) List(context.Context, int) ([]domain.Item, error) {
	return nil, errors.New("disk on fire")
}

func TestRepositoryFailure(t *testing.T) {
	srv := NewServer(brokenRepo{}, "localhost:0", adapter.NullLogger(), Options{})

	w := do(t, srv, http.MethodGet, "/todos?userId=1", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "disk on fire") {
		t.Error("internal errors must not leak to clients")
	}
}

// TestClientRoundTrip drives the REST client against the server
func TestClientRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	client := rest.NewClient(ts.URL, 0, 0, adapter.NullLogger())

	created, err := client.Create(ctx, domain.Draft{UserID: 5, Title: "milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "oat milk"
	done := true
	updated, err := client.Update(ctx, created.ID, domain.Patch{Title: &title, Completed: &done})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "oat milk" || !updated.Completed {
		t.Errorf("updated: got %+v", updated)
	}

	if err := client.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := client.Delete(ctx, created.ID); !errors.Is(err, domain.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}

	items, err := client.List(ctx, 5)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items: got %+v", items)
	}
}
