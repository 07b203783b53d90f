package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/postpulse/analytics-service/internal/dto"
)

// tenantHeader carries the caller's tenant on every scoped request.
const tenantHeader = "X-Tenant-ID"

const tenantContextKey = "tenant_id"

// TenantRequired rejects requests that do not identify a tenant. Every
// event and analytics route is tenant scoped; there is no cross-tenant access.
func TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(tenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error:   "access_denied",
				Message: "missing " + tenantHeader + " header",
			})
			return
		}
		c.Set(tenantContextKey, tenantID)
		c.Next()
	}
}

// tenantID returns the tenant established by TenantRequired.
func tenantID(c *gin.Context) string {
	return c.GetString(tenantContextKey)
}
