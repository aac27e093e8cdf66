package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kireeti407/Multi-Vendor-E-Commerce-Marketplace-Backend-System/internal/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ctxUserID = "userID"
	ctxRole   = "userRole"
)

// authRequired validates the bearer token and stores the caller's identity
// on the request context
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "Authentication required",
			})
			return
		}

		claims, err := h.authService.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "Invalid or expired token",
			})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// requireRole gates a route group to the given roles, after authRequired
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := currentRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, Response{
			Success: false,
			Message: "Insufficient permissions",
		})
	}
}

func currentUserID(c *gin.Context) primitive.ObjectID {
	id, _ := c.Get(ctxUserID)
	oid, _ := id.(primitive.ObjectID)
	return oid
}

func currentRole(c *gin.Context) string {
	role, _ := c.Get(ctxRole)
	r, _ := role.(string)
	return r
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
