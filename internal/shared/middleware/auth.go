package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog/internal/domains/user"
	"bookcatalog/internal/shared/apperror"
	"bookcatalog/internal/shared/response"
	"bookcatalog/pkg/token"
)

const identityKey = "identity"

var errHeaderMissing = apperror.New(apperror.AuthHeaderMissing, "authorization header missing or malformed")
var errForbidden = apperror.New(apperror.Forbidden, "you do not have the required permissions")

// Authenticate is the access gate. It requires a well-formed bearer
// credential, verifies it, and, when roles is non-empty, requires the
// verified role to be one of them. An empty role set admits any
// authenticated identity.
func Authenticate(verifier *token.Manager, roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, errHeaderMissing)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortWithError(c, errHeaderMissing)
			return
		}

		identity, err := verifier.Verify(parts[1])
		if err != nil {
			response.AbortWithError(c, err)
			return
		}

		if len(allowed) > 0 {
			if _, ok := allowed[user.Role(identity.Role)]; !ok {
				response.AbortWithError(c, errForbidden)
				return
			}
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFromContext returns the verified identity the gate attached.
func IdentityFromContext(c *gin.Context) (*token.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*token.Identity)
	return identity, ok
}
