// internal/session/session.go
//
// Browser session identity.
// A session ID (uuid) travels in an HS256-signed JWT, either as a cookie or
// as an "Authorization: Bearer" header. The ID keys the board held in the
// session store; the token carries nothing else.

package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultCookieName = "codenames_session"

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidToken = errors.New("invalid session token")
)

// Manager signs and verifies session tokens.
type Manager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager builds a Manager. secure marks cookies Secure and SameSite=None
// for production deployments behind TLS.
func NewManager(secret string, ttl time.Duration, secure bool) *Manager {
	if secret == "" {
		secret = "dev_secret_change_me"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: DefaultCookieName,
		secure:     secure,
	}
}

// NewID returns a fresh session ID.
func NewID() string { return uuid.NewString() }

// Sign creates a token for id and returns it with its expiry.
func (m *Manager) Sign(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(m.secret)
	return ss, exp, err
}

// Parse verifies tok and returns the session ID it carries.
func (m *Manager) Parse(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}
	id, _ := claims["sid"].(string)
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrInvalidToken
	}
	return id, nil
}

// FromRequest extracts and verifies the session ID on r.
func (m *Manager) FromRequest(r *http.Request) (string, error) {
	tok := m.bearerOrCookie(r)
	if tok == "" {
		return "", ErrNoToken
	}
	return m.Parse(tok)
}

// bearerOrCookie extracts a bearer token from Authorization header or the session cookie.
func (m *Manager) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(m.cookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetCookie writes the session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, m.cookie(token, exp, 0))
}

// Clear deletes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", time.Time{}, -1))
}

func (m *Manager) cookie(value string, exp time.Time, maxAge int) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if m.secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: sameSite,
		Expires:  exp,
		MaxAge:   maxAge,
	}
}
