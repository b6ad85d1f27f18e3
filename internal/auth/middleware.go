package auth

import (
	"net/http"
	"strings"

	"productivity/internal/dto"

	"github.com/gin-gonic/gin"
)

// DefaultHeader carries the caller identity. It is trusted as supplied.
const DefaultHeader = "X-User-Id"

const contextKeyUserID = "user_id"

const (
	// MissingIdentityMessage is the client-facing error for requests without an identity.
	MissingIdentityMessage = "User ID não informado"
	CodeMissingIdentity    = "missing_identity"
)

// MissingIdentityResponse is the 400 body sent when no identity is supplied.
func MissingIdentityResponse() dto.ErrorResponse {
	return dto.ErrorResponse{Error: MissingIdentityMessage, Code: CodeMissingIdentity}
}

// UserIDFromContext returns the current user ID set by RequireUserID. "" if not set.
func UserIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// RequireUserID returns a middleware that reads the caller identity from
// header and sets it in context. If missing or blank, responds with 400
// before any handler runs.
func RequireUserID(header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultHeader
	}
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(header))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, MissingIdentityResponse())
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
