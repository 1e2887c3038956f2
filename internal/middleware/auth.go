package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountService "github.com/gradebench/webapp/internal/modules/account/service"
	"github.com/gradebench/webapp/pkg/response"
)

type AuthMiddleware struct {
	accounts accountService.AccountService
}

func NewAuthMiddleware(accounts accountService.AccountService) *AuthMiddleware {
	return &AuthMiddleware{accounts: accounts}
}

// RequireAuth authenticates the request with HTTP Basic credentials. The
// username is the account email. On success the identity is attached to
// the context for downstream ownership checks.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, password, ok := c.Request.BasicAuth()
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		account, err := m.accounts.Authenticate(c.Request.Context(), email, password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			c.Abort()
			return
		}

		response.SetIdentity(c, response.Identity{
			AccountID: account.ID,
			Email:     account.Email,
		})
		c.Next()
	}
}
