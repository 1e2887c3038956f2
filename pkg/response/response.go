package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gradebench/webapp/pkg/apperror"
)

// Identity is the authenticated principal attached to the request context
// by the basic-auth middleware.
type Identity struct {
	AccountID uuid.UUID
	Email     string
}

const identityKey = "identity"

// SetIdentity stores the authenticated identity on the context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity retrieves the authenticated identity from the context
func GetIdentity(c *gin.Context) (Identity, error) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, apperror.ErrUnauthorized
	}

	id, ok := val.(Identity)
	if !ok {
		return Identity{}, apperror.ErrUnauthorized
	}

	return id, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors, expose a generic message
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": apperror.ErrInternal.Error()})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
