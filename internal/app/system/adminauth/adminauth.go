// Package adminauth guards the back-office routes with an optional bearer
// token checked against a bcrypt hash.
package adminauth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/edumanage/schoolsite/internal/app/system/envelope"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadHash is returned by New when the configured hash is not a bcrypt hash.
var ErrBadHash = errors.New("admin token hash is not a valid bcrypt hash")

// Guard checks bearer tokens. A Guard with no hash lets every request through.
type Guard struct {
	hash []byte
	log  *zap.Logger
}

// New returns a Guard for the given bcrypt hash. An empty hash disables the check.
func New(hash string, log *zap.Logger) (*Guard, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return &Guard{log: log}, nil
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, ErrBadHash
	}
	return &Guard{hash: []byte(hash), log: log}, nil
}

// Enabled reports whether a token is required.
func (g *Guard) Enabled() bool { return g != nil && len(g.hash) > 0 }

// Check reports whether token matches the configured hash.
func (g *Guard) Check(token string) bool {
	if !g.Enabled() {
		return true
	}
	if token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(token)) == nil
}

// Require rejects requests without a valid Authorization: Bearer header.
func (g *Guard) Require(next http.Handler) http.Handler {
	if !g.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Check(bearerToken(r)) {
			if g.log != nil {
				g.log.Info("admin request rejected",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
			}
			w.Header().Set("WWW-Authenticate", `Bearer realm="schoolsite"`)
			envelope.Fail(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
