package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantHeader carries the tenant identifier on API requests.
const TenantHeader = "X-Tenant-ID"

const tenantIDKey = contextKey("tenantID")

// TenantMiddleware resolves the tenant UUID scoping every request.
// The header takes precedence; defaultTenantID (dev convenience) applies when
// the header is absent. Requests without a resolvable tenant are rejected
// before reaching any handler.
func TenantMiddleware(defaultTenantID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			tenantID = defaultTenantID
		}
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}
		if _, err := uuid.Parse(tenantID); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rejected request with malformed tenant ID", slog.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid tenant identifier"})
			return
		}

		c.Set(string(tenantIDKey), tenantID)
		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID from the Gin context.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		return "", false
	}
	tenantID, ok := tenantVal.(string)
	if !ok {
		return "", false
	}
	return tenantID, true
}
