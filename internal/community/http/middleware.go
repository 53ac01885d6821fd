package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/security"
)

const (
	ctxUserID = "uid"
	ctxEmail  = "email"
	ctxTenant = "tenant_id"
)

// AuthJWT verifies the bearer token the gateway forwards and attaches the
// caller identity. Write paths read the author id from here; there is no
// fallback identity.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			api.Fail(c, api.NewError(api.CodeAuth, "no token provided"))
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			api.Fail(c, api.NewError(api.CodeAuth, "invalid token"))
			return
		}
		if claims.ID == "" {
			api.Fail(c, api.NewError(api.CodeAuth, "token has no subject"))
			return
		}

		c.Set(ctxUserID, claims.ID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxTenant, claims.TenantID)
		c.Next()
	}
}
