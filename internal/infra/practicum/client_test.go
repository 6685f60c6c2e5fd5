package practicum

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homework_notification_bot/internal/domain/homework"
)

func TestClient_HomeworkStatuses_SetsAuthAndFromDate(t *testing.T) {
	var gotAuth, gotFromDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFromDate = r.URL.Query().Get("from_date")
		fmt.Fprint(w, `{"current_date": 1000, "homeworks": []}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-token", 5*time.Second)
	raw, err := client.HomeworkStatuses(context.Background(), 123456)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "OAuth secret-token" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "OAuth secret-token")
	}
	if gotFromDate != "123456" {
		t.Errorf("from_date = %q, want %q", gotFromDate, "123456")
	}
	if _, ok := raw["current_date"]; !ok {
		t.Error("decoded response should carry the current_date key")
	}
}

func TestClient_HomeworkStatuses_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message": "invalid token"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token", 5*time.Second)
	_, err := client.HomeworkStatuses(context.Background(), 0)

	var apiErr *APIRequestError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIRequestError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("status code = %d, want %d", apiErr.StatusCode, http.StatusUnauthorized)
	}
	if apiErr.Body == "" {
		t.Error("server-supplied error body should be carried in the error")
	}
}

func TestClient_HomeworkStatuses_BodyNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>definitely not json</html>")
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	_, err := client.HomeworkStatuses(context.Background(), 0)

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

func TestClient_HomeworkStatuses_ConnectionFailure(t *testing.T) {
	// Server is closed before the request so the dial fails.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "token", 1*time.Second)
	_, err := client.HomeworkStatuses(context.Background(), 0)

	var connErr *ConnectionError
	if !errors.As(err, &connErr) {
		t.Fatalf("error = %v, want *ConnectionError", err)
	}
	if connErr.Unwrap() == nil {
		t.Error("connection error should wrap the underlying cause")
	}
}

func TestClient_HomeworkStatuses_ResultFeedsValidator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"current_date": 1000, "homeworks": [{"homework_name":"hw1","status":"approved"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	raw, err := client.HomeworkStatuses(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	currentDate, subs, err := homework.CheckResponse(raw)
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if currentDate != 1000 || len(subs) != 1 {
		t.Errorf("got currentDate=%d subs=%d, want 1000 and 1", currentDate, len(subs))
	}
}
