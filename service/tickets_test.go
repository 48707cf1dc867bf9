package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

var testCredential = Credential{Token: "secret-token"}

func TestGetJSON_Non2xxReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/fail", nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetJSON_DoesNotRetryByDefault(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/unavailable", nil, &out); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestGetJSON_RetriesTransientServerErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt32(&attempts, 1)
		if current < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("retry later"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil).WithRetries(3)
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	if err := client.getJSON(context.Background(), server.URL+"/retry", nil, &out); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if ok, _ := out["ok"].(bool); !ok {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestGetJSON_DoesNotRetryOnClientErrors(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request"))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil).WithRetries(3)
	client.retryBase = time.Millisecond
	client.retryCap = 2 * time.Millisecond

	var out map[string]any
	err := client.getJSON(context.Background(), server.URL+"/bad-request", nil, &out)
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestGetTickets_SendsCredentialAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/tickets" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("expected uuid request id, got %q", r.Header.Get("X-Request-ID"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "success": true,
  "data": {
    "tickets": [
      {"_id": "2", "showtime": {"title": "Late", "showtime": "2024-05-02T21:00:00Z"}, "seats": [{"row": "B", "number": 4}]},
      {"_id": "1", "showtime": {"title": "Early", "showtime": "2024-05-01T18:00:00Z"}, "seats": [{"row": "A", "number": 1}, {"row": "A", "number": 2}]}
    ]
  }
}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", server.Client(), nil)

	tickets, err := client.GetTickets(context.Background(), testCredential)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(tickets) != 2 {
		t.Fatalf("expected 2 tickets, got %d", len(tickets))
	}
	if tickets[0].Id != "1" || tickets[1].Id != "2" {
		t.Fatalf("tickets not sorted by showtime: %+v", tickets)
	}
	if len(tickets[0].Seats) != 2 || tickets[0].Seats[1].Number != "2" {
		t.Fatalf("unexpected seats: %+v", tickets[0].Seats)
	}
}

func TestGetTickets_MissingTicketsIsEmpty(t *testing.T) {
	for _, body := range []string{`{"data": {}}`, `{}`, `{"data": {"tickets": null}}`, ``} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		client := NewClient(server.URL, server.Client(), nil)
		tickets, err := client.GetTickets(context.Background(), testCredential)
		server.Close()
		if err != nil {
			t.Fatalf("body %q: expected nil error, got %v", body, err)
		}
		if len(tickets) != 0 {
			t.Fatalf("body %q: expected no tickets, got %d", body, len(tickets))
		}
	}
}

func TestGetTickets_MalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"tickets": "nope"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)
	if _, err := client.GetTickets(context.Background(), testCredential); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestGetTickets_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"not authorized"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)
	_, err := client.GetTickets(context.Background(), testCredential)
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if IsNotFound(err) {
		t.Fatal("did not expect not found")
	}
}

func TestGetTickets_RequiresToken(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil, nil)
	if _, err := client.GetTickets(context.Background(), Credential{Token: "  "}); err != ErrMissingToken {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestGetTicket_FindsById(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"tickets":[{"id":"a","showtime":{"title":"One","showtime":"1"}},{"id":"b","showtime":{"title":"Two","showtime":"2"}}]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), nil)
	ticket, err := client.GetTicket(context.Background(), testCredential, "b")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ticket.Showtime.Title != "Two" {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
	if _, err := client.GetTicket(context.Background(), testCredential, "zzz"); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}
