package shortener

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestServer(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()
	h := NewHandler(NewService(newTestStore(t, ttl)), log.New(io.Discard))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

// ─────────────────────────── Store ───────────────────────────

func TestStorePutGet(t *testing.T) {
	store := newTestStore(t, time.Hour)

	if err := store.Put("abcd1234", "https://example.com", "alice"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get("abcd1234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "https://example.com" {
		t.Errorf("Get = %q, want %q", got, "https://example.com")
	}
}

func TestStoreGetUnknownCode(t *testing.T) {
	store := newTestStore(t, time.Hour)

	if _, err := store.Get("nope"); err != ErrNotFound {
		t.Errorf("Get unknown code: err = %v, want ErrNotFound", err)
	}
}

func TestStorePutLiveCodeReturnsErrCodeTaken(t *testing.T) {
	store := newTestStore(t, time.Hour)

	if err := store.Put("dup", "https://a.example", "alice"); err != nil {
		t.Fatalf("first Put: %v", err)
	}
	if err := store.Put("dup", "https://b.example", "bob"); !errors.Is(err, ErrCodeTaken) {
		t.Errorf("second Put with a live code: err = %v, want ErrCodeTaken", err)
	}
	got, err := store.Get("dup")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "https://a.example" {
		t.Errorf("live link was overwritten: Get = %q", got)
	}
}

func TestStorePutDisplacesExpiredCode(t *testing.T) {
	store := newTestStore(t, time.Hour)

	if err := store.putAt("dead1234", "https://old.example", "alice", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("putAt: %v", err)
	}
	if _, err := store.Get("dead1234"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired code: err = %v, want ErrNotFound", err)
	}

	// The stale row must not block reuse of its code.
	if err := store.Put("dead1234", "https://new.example", "bob"); err != nil {
		t.Fatalf("Put over expired code: %v", err)
	}
	got, err := store.Get("dead1234")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "https://new.example" {
		t.Errorf("Get = %q, want the displacing URL", got)
	}
}

func TestStoreExpiry(t *testing.T) {
	store := newTestStore(t, time.Millisecond)

	if err := store.Put("soon", "https://example.com", "alice"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if _, err := store.Get("soon"); err != ErrNotFound {
		t.Errorf("expired code: err = %v, want ErrNotFound", err)
	}

	purged, err := store.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if purged != 1 {
		t.Errorf("Purge removed %d rows, want 1", purged)
	}
}

func TestServicePurgeExpired(t *testing.T) {
	store := newTestStore(t, time.Hour)
	svc := NewService(store)

	if err := store.putAt("dead1234", "https://old.example", "alice", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("putAt: %v", err)
	}
	purged, err := svc.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if purged != 1 {
		t.Errorf("PurgeExpired removed %d rows, want 1", purged)
	}
}

// ─────────────────────────── Service ───────────────────────────

func TestValidURL(t *testing.T) {
	valid := []string{"https://example.com", "http://example.com/path?q=1", "ftp://files.example.com"}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Errorf("ValidURL(%q) = false, want true", u)
		}
	}

	invalid := []string{"", "example.com", "https://", "/relative/path", "not a url"}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Errorf("ValidURL(%q) = true, want false", u)
		}
	}
}

func TestServiceShortenAndResolve(t *testing.T) {
	svc := NewService(newTestStore(t, time.Hour))

	code, err := svc.Shorten("https://example.com/long/path", "alice")
	if err != nil {
		t.Fatalf("Shorten: %v", err)
	}
	if len(code) != codeLength {
		t.Errorf("code length = %d, want %d", len(code), codeLength)
	}

	got, err := svc.Resolve(code)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != "https://example.com/long/path" {
		t.Errorf("Resolve = %q, want original URL", got)
	}
}

func TestServiceShortenInvalidURL(t *testing.T) {
	svc := NewService(newTestStore(t, time.Hour))

	if _, err := svc.Shorten("not-a-url", "alice"); err == nil {
		t.Error("Shorten should reject an invalid URL")
	}
}

func TestServiceShortenSameURLTwice(t *testing.T) {
	svc := NewService(newTestStore(t, time.Hour))

	first, err := svc.Shorten("https://example.com", "alice")
	if err != nil {
		t.Fatalf("first Shorten: %v", err)
	}
	second, err := svc.Shorten("https://example.com", "alice")
	if err != nil {
		t.Fatalf("second Shorten: %v", err)
	}
	if first == second {
		t.Error("each Shorten call should mint a distinct code")
	}
}

// ─────────────────────────── HTTP ───────────────────────────

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestHandleHomePage(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "URL Shortener") {
		t.Error("home page should render the shortener form")
	}
}

func TestHandleShorten(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Post(srv.URL+"/api/shorten", "application/json",
		strings.NewReader(`{"url": "https://example.com", "user_id": "alice"}`))
	if err != nil {
		t.Fatalf("POST /api/shorten: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("success = %v, want true", body["success"])
	}
	if body["original_url"] != "https://example.com" {
		t.Errorf("original_url = %v", body["original_url"])
	}
	code, _ := body["short_code"].(string)
	if len(code) != codeLength {
		t.Errorf("short_code = %q, want %d characters", code, codeLength)
	}
	shortURL, _ := body["short_url"].(string)
	if !strings.HasSuffix(shortURL, "/s/"+code) {
		t.Errorf("short_url = %q, want suffix /s/%s", shortURL, code)
	}
}

func TestHandleShortenRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	cases := []struct {
		name string
		body string
	}{
		{"not JSON", "this is not json"},
		{"missing user_id", `{"url": "https://example.com"}`},
		{"missing url", `{"user_id": "alice"}`},
		{"invalid url", `{"url": "no-scheme", "user_id": "alice"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/shorten", "application/json", strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("POST /api/shorten: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			body := decodeBody(t, resp)
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
		})
	}
}

func TestHandleRedirect(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Post(srv.URL+"/api/shorten", "application/json",
		strings.NewReader(`{"url": "https://example.com/target", "user_id": "alice"}`))
	if err != nil {
		t.Fatalf("POST /api/shorten: %v", err)
	}
	code := decodeBody(t, resp)["short_code"].(string)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	redir, err := client.Get(srv.URL + "/s/" + code)
	if err != nil {
		t.Fatalf("GET /s/%s: %v", code, err)
	}
	defer redir.Body.Close()
	if redir.StatusCode != http.StatusFound {
		t.Errorf("status = %d, want 302", redir.StatusCode)
	}
	if loc := redir.Header.Get("Location"); loc != "https://example.com/target" {
		t.Errorf("Location = %q, want original URL", loc)
	}
}

func TestHandleRedirectUnknownCode(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Get(srv.URL + "/s/missing1")
	if err != nil {
		t.Fatalf("GET /s/missing1: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "404 - URL Not Found") {
		t.Error("404 page should explain the code is unknown or expired")
	}
}

func TestHandleStats(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Post(srv.URL+"/api/shorten", "application/json",
		strings.NewReader(`{"url": "https://example.com", "user_id": "alice"}`))
	if err != nil {
		t.Fatalf("POST /api/shorten: %v", err)
	}
	code := decodeBody(t, resp)["short_code"].(string)

	stats, err := http.Get(srv.URL + "/api/stats/" + code)
	if err != nil {
		t.Fatalf("GET /api/stats/%s: %v", code, err)
	}
	if stats.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", stats.StatusCode)
	}
	body := decodeBody(t, stats)
	if body["success"] != true || body["exists"] != true {
		t.Errorf("stats body = %v, want success and exists true", body)
	}
	if body["original_url"] != "https://example.com" {
		t.Errorf("original_url = %v", body["original_url"])
	}
}

func TestHandleRedirectMissReclaimsExpired(t *testing.T) {
	store := newTestStore(t, time.Hour)
	h := NewHandler(NewService(store), log.New(io.Discard))
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	if err := store.putAt("dead1234", "https://old.example", "alice", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("putAt: %v", err)
	}

	resp, err := http.Get(srv.URL + "/s/dead1234")
	if err != nil {
		t.Fatalf("GET /s/dead1234: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	// The miss should already have reclaimed the stale row.
	purged, err := store.Purge()
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if purged != 0 {
		t.Errorf("miss left %d expired rows behind, want 0", purged)
	}
}

func TestHandleStatsUnknownCode(t *testing.T) {
	srv := newTestServer(t, time.Hour)

	resp, err := http.Get(srv.URL + "/api/stats/missing1")
	if err != nil {
		t.Fatalf("GET /api/stats/missing1: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "Short URL not found" {
		t.Errorf("error = %v", body["error"])
	}
}
