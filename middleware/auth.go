package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fitgrid/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	ContextUserID = "userID"
	ContextGymID  = "gymID"
	ContextRole   = "role"

	RoleStaff = "staff"
)

// AuthMiddleware validates the bearer token and places the pre-authorized
// caller identity on the context. Nothing past this point looks at roles
// again except StaffOnly below; the schedule core never does.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		claims, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		// Reject tokens that were revoked since issuance. A cache miss means
		// the token is still good; revocation writes the hash with a TTL
		// matching the token lifetime.
		ctx := context.Background()
		cacheKey := utils.AuthCachePrefix + "revoked:" + utils.HashToken(tokenString)
		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			if _, err := authCache.Get(ctx, cacheKey).Result(); err == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token revoked",
				})
				return
			} else if err != redis.Nil {
				// Fail open on cache trouble; the signature already verified.
				utils.GetLogger().Sugar().Warnf("auth cache lookup failed: %v", err)
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextGymID, claims.GymID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// StaffOnly gates schedule administration routes. It must run after
// AuthMiddleware.
func StaffOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		if role != RoleStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Staff access required",
			})
			return
		}
		c.Next()
	}
}

// RevokeToken blacklists a token hash for the remaining token lifetime.
func RevokeToken(ctx context.Context, tokenString string, ttl time.Duration) error {
	cacheKey := utils.AuthCachePrefix + "revoked:" + utils.HashToken(tokenString)
	return utils.GetAuthCacheClient().Set(ctx, cacheKey, "1", ttl).Err()
}
