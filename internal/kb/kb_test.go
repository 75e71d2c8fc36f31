package kb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Comms Guide</title></head><body>
			<article><h1>Comms Guide</h1>
			<p>Always lead with customer impact. Keep updates under three sentences.</p>
			<p>Close with the next update time.</p></article>
		</body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher().WithClient(srv.Client())
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !strings.Contains(got, "customer impact") {
		t.Errorf("readable text missing content:\n%s", got)
	}
	if strings.Contains(got, "<p>") {
		t.Error("HTML tags leaked into output")
	}
}

func TestFetchPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("plain style guide"))
	}))
	defer srv.Close()

	f := NewFetcher().WithClient(srv.Client())
	got, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != "plain style guide" {
		t.Errorf("got %q", got)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher().WithClient(srv.Client())
	if _, err := f.Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error on 404")
	}
	if _, err := f.Fetch(context.Background(), ""); err == nil {
		t.Error("expected error on empty url")
	}
}
