package shortener

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// Handler serves the shortener's HTTP API.
type Handler struct {
	svc    *Service
	logger *log.Logger
}

// NewHandler creates the HTTP handler around a shortener service.
func NewHandler(svc *Service, logger *log.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Routes returns the shortener's route table.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /{$}", h.handleHome)
	mux.HandleFunc("POST /api/shorten", h.handleShorten)
	mux.HandleFunc("GET /s/{code}", h.handleRedirect)
	mux.HandleFunc("GET /api/stats/{code}", h.handleStats)
	return h.logRequests(mux)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// reclaimExpired purges expired rows. The miss paths call it so a
// long-running server sheds dead links without a background worker.
func (h *Handler) reclaimExpired() {
	if purged, err := h.svc.PurgeExpired(); err == nil && purged > 0 {
		h.logger.Debug("purged expired links", "count", purged)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"message":   "URL Shortener is running!",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

const homePage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>URL Shortener</title>
</head>
<body>
<h1>🔗 URL Shortener</h1>
<form id="f">
  <label>URL to shorten: <input type="url" id="url" required></label><br>
  <label>Your Name/ID: <input type="text" id="user_id" required></label><br>
  <button type="submit">Shorten URL</button>
</form>
<pre id="result"></pre>
<script>
document.getElementById('f').addEventListener('submit', async (e) => {
  e.preventDefault();
  const resp = await fetch('/api/shorten', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({
      url: document.getElementById('url').value,
      user_id: document.getElementById('user_id').value,
    }),
  });
  const data = await resp.json();
  document.getElementById('result').textContent =
    data.success ? data.short_url : 'Error: ' + data.error;
});
</script>
</body>
</html>
`

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, homePage)
}

type shortenRequest struct {
	URL    string `json:"url"`
	UserID string `json:"user_id"`
}

func (h *Handler) handleShorten(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if req.URL == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "URL and user_id are required")
		return
	}
	if !ValidURL(req.URL) {
		writeError(w, http.StatusBadRequest, "Invalid URL format")
		return
	}

	code, err := h.svc.Shorten(req.URL, req.UserID)
	if err != nil {
		h.logger.Error("shorten failed", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate short URL")
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"short_url":    fmt.Sprintf("%s://%s/s/%s", scheme, r.Host, code),
		"short_code":   code,
		"original_url": req.URL,
	})
}

func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	target, err := h.svc.Resolve(code)
	if errors.Is(err, ErrNotFound) {
		h.reclaimExpired()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `<h1>404 - URL Not Found</h1>
<p>The short URL you're looking for doesn't exist or has expired.</p>
<a href="/">Create a new short URL</a>
`)
		return
	}
	if err != nil {
		h.logger.Error("redirect failed", "code", code, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")

	target, err := h.svc.Resolve(code)
	if errors.Is(err, ErrNotFound) {
		h.reclaimExpired()
		writeError(w, http.StatusNotFound, "Short URL not found")
		return
	}
	if err != nil {
		h.logger.Error("stats failed", "code", code, "error", err)
		writeError(w, http.StatusInternalServerError, "Error retrieving stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"short_code":   code,
		"original_url": target,
		"exists":       true,
	})
}
