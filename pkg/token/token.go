package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookcatalog/internal/shared/apperror"
)

// ErrInvalidCredential is the single failure every verification problem
// collapses into. Callers cannot distinguish expired from malformed.
var ErrInvalidCredential = apperror.New(apperror.InvalidCredential, "invalid or expired token")

// Claims binds a username and role to a signed credential.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified result handed to the access gate.
type Identity struct {
	Username string
	Role     string
}

// Manager signs and verifies bearer credentials with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. A zero ttl defaults to one hour.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed token for the given identity.
func (m *Manager) Generate(username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify checks signature and expiry and extracts the identity.
func (m *Manager) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidCredential
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidCredential
	}

	return &Identity{Username: claims.Username, Role: claims.Role}, nil
}
