package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"kenkai/internal/config"

	"github.com/google/uuid"
)

var (
	// ErrGateNotConfigured means no reference hash is set. The gate fails
	// closed: there is no fallback credential.
	ErrGateNotConfigured = errors.New("admin password hash is not configured")
	ErrInvalidPassword   = errors.New("invalid password")
)

// AdminGate verifies the shared admin password and tracks issued session
// tokens server-side. Tokens are opaque uuids with a TTL; routes behind the
// gate validate them, so authorization never rests on client state alone.
type AdminGate struct {
	refHash string
	ttl     time.Duration

	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
}

func NewAdminGate(cfg config.AdminConfig) *AdminGate {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AdminGate{
		refHash: strings.ToLower(strings.TrimSpace(cfg.PasswordHash)),
		ttl:     ttl,
		tokens:  make(map[string]time.Time),
	}
}

// Verify compares the SHA-256 of the submitted password against the
// configured reference hash in constant time and mints a session token on
// success.
func (g *AdminGate) Verify(password string) (string, error) {
	if g.refHash == "" {
		return "", ErrGateNotConfigured
	}

	sum := sha256.Sum256([]byte(password))
	hashed := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(hashed), []byte(g.refHash)) != 1 {
		return "", ErrInvalidPassword
	}

	token := uuid.NewString()
	g.mu.Lock()
	g.tokens[token] = time.Now().Add(g.ttl)
	g.mu.Unlock()

	return token, nil
}

// Authorize reports whether the request carries a valid, unexpired bearer
// token.
func (g *AdminGate) Authorize(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}

	now := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	expiry, ok := g.tokens[token]
	if !ok {
		return false
	}
	if now.After(expiry) {
		delete(g.tokens, token)
		return false
	}
	return true
}
