package shortener

import (
	"errors"
	"fmt"
	"net/url"
)

// Service shortens URLs and resolves short codes against the store.
type Service struct {
	store *Store
}

// NewService wraps a link store.
func NewService(store *Store) *Service {
	return &Service{store: store}
}

// ValidURL reports whether raw is an absolute URL with both a scheme
// and a host.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Shorten stores rawURL and returns its short code. Codes are random
// enough that collisions are rare; when Put reports a live duplicate
// we regenerate and try again. The insert itself is the uniqueness
// check, so two concurrent Shorten calls can never share a code.
func (s *Service) Shorten(rawURL, userID string) (string, error) {
	if !ValidURL(rawURL) {
		return "", fmt.Errorf("shortener: invalid URL %q", rawURL)
	}

	for {
		code := newCode(rawURL, userID)
		err := s.store.Put(code, rawURL, userID)
		if errors.Is(err, ErrCodeTaken) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
}

// Resolve returns the original URL for a code, or ErrNotFound.
func (s *Service) Resolve(code string) (string, error) {
	return s.store.Get(code)
}

// PurgeExpired reclaims expired rows, returning how many were removed.
func (s *Service) PurgeExpired() (int64, error) {
	return s.store.Purge()
}
