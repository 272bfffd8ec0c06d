package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mmcdole/todos/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 0, maxRetries, nil)
}

func TestList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "42" {
			t.Errorf("userId: got %q, want 42", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}
		w.Write([]byte(`[{"id":1,"userId":42,"title":"milk","completed":false},{"id":2,"userId":42,"title":"eggs","completed":true}]`))
	}, 0)

	items, err := client.List(context.Background(), 42)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 || items[1].Title != "eggs" || !items[1].Completed {
		t.Errorf("items: got %+v", items)
	}
}

func TestCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("userId"); got != "42" {
			t.Errorf("userId: got %q, want 42", got)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type: got %q", ct)
		}

		var draft domain.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if draft.Title != "milk" || draft.UserID != 42 || draft.Completed {
			t.Errorf("draft: got %+v", draft)
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Item{ID: 7, UserID: 42, Title: "milk"})
	}, 0)

	item, err := client.Create(context.Background(), domain.Draft{UserID: 42, Title: "milk"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if item.ID != 7 {
		t.Errorf("ID: got %d, want 7", item.ID)
	}
}

func TestUpdate_SendsOnlyPatchedFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/todos/5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"completed":true}` {
			t.Errorf("body: got %s", body)
		}
		w.Write([]byte(`{"id":5,"userId":42,"title":"milk","completed":true}`))
	}, 0)

	done := true
	item, err := client.Update(context.Background(), 5, domain.Patch{Completed: &done})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !item.Completed {
		t.Error("item should be completed")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantErr  bool
		notFound bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "not found", status: http.StatusNotFound, wantErr: true, notFound: true},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if r.Method != http.MethodDelete || r.URL.Path != "/todos/3" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}, 3)

			err := client.Delete(context.Background(), 3)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Delete error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, domain.ErrUnexpectedStatus) {
				t.Errorf("expected ErrUnexpectedStatus, got %v", err)
			}
			if errors.Is(err, domain.ErrItemNotFound) != tt.notFound {
				t.Errorf("errors.Is(err, ErrItemNotFound) should be %t, err = %v", tt.notFound, err)
			}
			if calls.Load() != 1 {
				t.Errorf("mutating requests must not be retried, got %d calls", calls.Load())
			}
		})
	}
}

func TestList_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}, 1)

	items, err := client.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items: got %+v", items)
	}
	if calls.Load() != 2 {
		t.Errorf("calls: got %d, want 2", calls.Load())
	}
}

func TestList_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}, 3)

	_, err := client.List(context.Background(), 1)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 StatusError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls: got %d, want 1", calls.Load())
	}
}

func TestList_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}, 0)

	_, err := client.List(context.Background(), 1)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, domain.ErrServerOffline) || errors.Is(err, domain.ErrUnexpectedStatus) {
		t.Errorf("parse errors must not look like connectivity failures: %v", err)
	}
}

func TestServerOffline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, 0, 0, nil)
	_, err := client.List(context.Background(), 1)
	if !errors.Is(err, domain.ErrServerOffline) {
		t.Fatalf("expected ErrServerOffline, got %v", err)
	}
}

func TestCanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("userId") {
		case "1":
			w.Write([]byte(`[{"id":1,"userId":1,"title":"a","completed":false}]`))
		case "2":
			w.Write([]byte(`<html>hello</html>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	count, err := Probe(context.Background(), srv.URL, 1)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count: got %d, want 1", count)
	}

	if _, err := Probe(context.Background(), srv.URL, 2); err == nil {
		t.Error("expected error for non-JSON response")
	}
	if _, err := Probe(context.Background(), srv.URL, 3); !errors.Is(err, domain.ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}
	if _, err := Probe(context.Background(), "localhost:4000", 1); err == nil {
		t.Error("expected error for URL without scheme")
	}
}
