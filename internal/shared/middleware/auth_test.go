package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/domains/user"
	"bookcatalog/pkg/token"
)

const testSecret = "test-secret"

func gatedRouter(roles ...user.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := token.NewManager(testSecret, time.Hour)

	r := gin.New()
	r.GET("/protected", Authenticate(verifier, roles...), func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": identity.Username})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func validToken(t *testing.T, role string) string {
	t.Helper()
	m := token.NewManager(testSecret, time.Hour)
	raw, err := m.Generate("alice", role)
	require.NoError(t, err)
	return raw
}

func expiredToken(t *testing.T, role string) string {
	t.Helper()
	claims := token.Claims{
		Username: "alice",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func TestAuthenticateMissingHeader(t *testing.T) {
	w := doRequest(gatedRouter(user.RoleAdmin), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_HEADER_MISSING", errorCode(t, w))
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic abc", "Bearer a b"} {
		w := doRequest(gatedRouter(user.RoleAdmin), header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "AUTH_HEADER_MISSING", errorCode(t, w), "header %q", header)
	}
}

func TestAuthenticateExpiredTokenIsInvalidCredentialNotForbidden(t *testing.T) {
	// Even with the right role baked in, expiry must surface as an
	// invalid credential, never as a role failure.
	w := doRequest(gatedRouter(user.RoleAdmin), "Bearer "+expiredToken(t, "admin"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIAL", errorCode(t, w))
}

func TestAuthenticateWrongRole(t *testing.T) {
	w := doRequest(gatedRouter(user.RoleAdmin), "Bearer "+validToken(t, "client"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))
}

func TestAuthenticateAllowedRole(t *testing.T) {
	w := doRequest(gatedRouter(user.RoleAdmin, user.RoleClient), "Bearer "+validToken(t, "client"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestAuthenticateEmptyRoleSetAdmitsAnyAuthenticated(t *testing.T) {
	w := doRequest(gatedRouter(), "Bearer "+validToken(t, "client"))

	assert.Equal(t, http.StatusOK, w.Code)
}
