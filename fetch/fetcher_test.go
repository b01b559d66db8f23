package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/git-pkgs/outdated/internal/core"
)

const sampleMetadata = `<?xml version="1.0" encoding="UTF-8"?>
<metadata>
  <groupId>com.example</groupId>
  <artifactId>demo</artifactId>
  <versioning>
    <lastUpdated>20230615120000</lastUpdated>
  </versioning>
</metadata>`

func TestFetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, want %q", ua, "test-agent")
		}
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Errorf("X-Token = %q, want %q", got, "secret")
		}
		w.Header().Set("Content-Type", "text/xml")
		w.Header().Set("ETag", `"abc123"`)
		_, _ = w.Write([]byte(sampleMetadata))
	}))
	defer server.Close()

	f := NewFetcher(WithUserAgent("test-agent"), WithHeader("X-Token", "secret"))
	doc, err := f.Fetch(context.Background(), server.URL+"/com/example/demo/maven-metadata.xml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = doc.Body.Close() }()

	if doc.ContentType != "text/xml" {
		t.Errorf("ContentType = %q, want %q", doc.ContentType, "text/xml")
	}
	if doc.ETag != `"abc123"` {
		t.Errorf("ETag = %q, want %q", doc.ETag, `"abc123"`)
	}

	body, err := io.ReadAll(doc.Body)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(body) != sampleMetadata {
		t.Errorf("body = %q, want %q", string(body), sampleMetadata)
	}
}

func TestFetchNotFound(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(WithBaseDelay(time.Millisecond))
	_, err := f.Fetch(context.Background(), server.URL+"/missing/maven-metadata.xml")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Fetch = %v, want ErrNotFound", err)
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1 (404 is not retried)", attempts.Load())
	}
}

func TestFetchRateLimitRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(sampleMetadata))
	}))
	defer server.Close()

	f := NewFetcher(WithBaseDelay(10 * time.Millisecond))
	doc, err := f.Fetch(context.Background(), server.URL+"/maven-metadata.xml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = doc.Body.Close() }()

	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want 3", attempts.Load())
	}
}

func TestFetchServerErrorRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleMetadata))
	}))
	defer server.Close()

	f := NewFetcher(WithBaseDelay(10 * time.Millisecond))
	doc, err := f.Fetch(context.Background(), server.URL+"/maven-metadata.xml")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	defer func() { _ = doc.Body.Close() }()

	if attempts.Load() != 2 {
		t.Errorf("attempts = %d, want 2", attempts.Load())
	}
}

func TestFetchMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(WithMaxRetries(2), WithBaseDelay(10*time.Millisecond))
	_, err := f.Fetch(context.Background(), server.URL+"/maven-metadata.xml")
	if !errors.Is(err, ErrUpstreamDown) {
		t.Errorf("expected ErrUpstreamDown, got %v", err)
	}

	// Initial attempt + 2 retries = 3 total
	if attempts.Load() != 3 {
		t.Errorf("attempts = %d, want 3", attempts.Load())
	}
}

func TestFetchUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("denied"))
	}))
	defer server.Close()

	f := NewFetcher()
	_, err := f.Fetch(context.Background(), server.URL+"/maven-metadata.xml")
	if err == nil {
		t.Fatal("expected error for 403")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUpstreamDown) {
		t.Errorf("403 should not map to a sentinel, got %v", err)
	}
	var httpErr *core.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *core.HTTPError, got %T", err)
	}
	if httpErr.StatusCode != http.StatusForbidden || httpErr.Body != "denied" || httpErr.IsNotFound() {
		t.Errorf("unexpected HTTPError %+v", httpErr)
	}
}

func TestFetchContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(sampleMetadata))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := NewFetcher()
	_, err := f.Fetch(ctx, server.URL+"/maven-metadata.xml")
	if err == nil {
		t.Error("expected error on context cancellation")
	}
}
