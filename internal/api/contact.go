package api

import (
	"bottle_orders/internal/store" // Contact inbox
	"bottle_orders/internal/utils" // Cache keys
	"net/http"                     // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// ContactRequest is a contact-form submission
type ContactRequest struct {
	Name    string `json:"name"`    // Sender name
	Email   string `json:"email"`   // Sender email
	Message string `json:"message"` // Message body
}

// SubmitContactHandler stores an unauthenticated contact-form submission
func SubmitContactHandler(inbox *store.ContactInbox, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		if _, err := inbox.Submit(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), utils.AllContactsKey)
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Message sent successfully"})
	}
}
