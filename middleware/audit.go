package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anjuman-committee/community-backend/internal/auditlog"
)

// ClientIP stores the caller's address in the context for the audit trail
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	// X-Forwarded-For may carry a chain, the first hop is the client
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xri := c.GetHeader("X-Real-Ip"); xri != "" && net.ParseIP(xri) != nil {
		return xri
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// GetIPFromContext retrieves the client IP captured by ClientIP
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return resolveClientIP(c)
}

// AuditTrail records every mutating admin request after it completes.
// Reads are skipped to keep the log focused on state changes.
func AuditTrail(auditSvc auditlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		status := "success"
		if c.Writer.Status() >= http.StatusBadRequest {
			status = "failure"
		}

		_ = auditSvc.LogAction(c.Request.Context(), nil, "ADMIN_"+c.Request.Method, map[string]interface{}{
			"path":        c.FullPath(),
			"status_code": c.Writer.Status(),
			"admin_email": c.GetString("admin_email"),
		}, GetIPFromContext(c), status)
	}
}
