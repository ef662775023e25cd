package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSourceOpenReturnsBody(t *testing.T) {
	t.Parallel()

	const payload = `[{"product_id": "P-1", "price": "N/A"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, payload)
	}))
	defer srv.Close()

	src := NewSource(srv.URL+"/products.json", Config{Timeout: 2 * time.Second})
	rc, err := src.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != payload {
		t.Fatalf("body = %q, want the feed payload", body)
	}
}

func TestSourceOpenNon2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewSource(srv.URL+"/reconciliation.csv", Config{Timeout: 2 * time.Second})
	_, err := src.Open(context.Background())
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "status 403") {
		t.Fatalf("error = %v, want the status surfaced", err)
	}
}
