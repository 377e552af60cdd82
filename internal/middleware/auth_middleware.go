package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/woodcrrests/scratchcard_api/internal/utils"
)

// Context keys populated by AuthMiddleware for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
	CtxTraderID = "trader_id"
)

// AuthMiddleware verifies bearer tokens on protected routes. Both admin tokens
// and trader-scoped tokens (issued via the trader validation link) are
// accepted; decoded claims are attached to the request context.
type AuthMiddleware struct {
	secret string
}

// NewAuthMiddleware constructs an AuthMiddleware with the signing secret.
func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{secret: secret}
}

func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ParseUserToken(m.secret, parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		if claims.UserID != "" {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxRole, claims.Role)
			c.Next()
			return
		}

		// Not an admin token; the same secret signs trader-scoped tokens.
		traderClaims, err := utils.ParseTraderToken(m.secret, parts[1])
		if err != nil || traderClaims.TraderID == "" {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CtxTraderID, traderClaims.TraderID)
		c.Next()
	}
}
