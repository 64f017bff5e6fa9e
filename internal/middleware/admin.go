package middleware

import (
	"bottle_orders/internal/domain" // Importing domain models
	"context"                       // Request context
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminLookup resolves an admin by id
type AdminLookup interface {
	GetAdmin(ctx context.Context, id string) (*domain.Admin, error)
}

// AdminOnlyMiddleware checks the admin flag of the token and that the admin record still exists
func AdminOnlyMiddleware(admins AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, exists := c.Get(UserIDKey) // Get subject id from context
		// Check if the subject id exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Check the admin flag carried by the token
		if !c.GetBool(IsAdminKey) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// Check the admin record on each request so a removed admin loses access
		if _, err := admins.GetAdmin(c.Request.Context(), adminID.(string)); err != nil {
			if domain.IsKind(err, domain.NotFoundError) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
