package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientPostSuccess(t *testing.T) {
	var received Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("request body is not valid JSON: %v", err)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	resp, err := NewClient().Post(context.Background(), srv.URL, NewMessage(upgradeMessage()))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("expected response body, got %q", resp)
	}
	if received.Text == "" || len(received.Blocks) == 0 {
		t.Fatalf("server received incomplete message: %+v", received)
	}
}

func TestClientPostFailureReturnsBodyAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("invalid_payload"))
	}))
	defer srv.Close()

	_, err := NewClient().Post(context.Background(), srv.URL, NewMessage(upgradeMessage()))
	if err == nil {
		t.Fatal("expected error on non-2xx status")
	}
	if err.Error() != "invalid_payload" {
		t.Fatalf("expected response body as error, got %q", err.Error())
	}
}
