package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/souzadediogo/community-brain/internal/api"
	"github.com/souzadediogo/community-brain/internal/log"
	"github.com/souzadediogo/community-brain/internal/security"
)

const (
	ctxUserID = "uid"
	ctxEmail  = "email"
	ctxTenant = "tenant_id"
)

// BearerToken extracts the raw token from the Authorization header, or ""
// if the header is missing or not a bearer scheme.
func BearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[len("Bearer "):])
}

// Authenticate rejects the request unless a valid signed token is
// presented, and attaches the decoded identity.
func Authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok := BearerToken(c)
		if tok == "" {
			api.Fail(c, api.NewError(api.CodeAuth, "no token provided"))
			return
		}
		claims, err := security.ParseAccess(secret, tok)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			api.Fail(c, api.NewError(api.CodeAuth, msg))
			return
		}

		c.Set(ctxUserID, claims.ID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxTenant, claims.TenantID)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present and
// silently proceeds otherwise. For endpoints that personalize but don't
// require login.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tok := BearerToken(c); tok != "" {
			if claims, err := security.ParseAccess(secret, tok); err == nil {
				c.Set(ctxUserID, claims.ID)
				c.Set(ctxEmail, claims.Email)
				c.Set(ctxTenant, claims.TenantID)
			}
		}
		c.Next()
	}
}

// RateLimit is a fixed-window per-IP limiter backed by Redis. A nil
// client or non-positive rate disables it; Redis hiccups fail open so the
// limiter can never take the gateway down with it.
func RateLimit(rdb *redis.Client, perMin int) gin.HandlerFunc {
	if rdb == nil || perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		key := "rl:" + c.ClientIP()
		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			log.L().Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if n == 1 {
			rdb.Expire(ctx, key, time.Minute)
		}
		if n > int64(perMin) {
			api.Fail(c, api.NewError(api.CodeRateLimited, "too many requests"))
			return
		}
		c.Next()
	}
}
