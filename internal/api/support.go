package api

import (
	"bottle_orders/internal/domain"     // Importing domain models
	"bottle_orders/internal/middleware" // Context keys
	"bottle_orders/internal/store"      // Ledgers
	"bottle_orders/internal/utils"      // Cache keys
	"context"                           // Request context
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// TicketRequest represents a new support ticket
type TicketRequest struct {
	Subject string `json:"subject"` // Short summary
	Message string `json:"message"` // Problem description
}

// CreateTicketHandler opens a support ticket for the caller
func CreateTicketHandler(identity *store.IdentityStore, tickets *store.SupportLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TicketRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Subject and message are required"})
			return
		}
		ctx := c.Request.Context()
		owner, err := identity.GetUser(ctx, c.GetString(middleware.UserIDKey))
		if err != nil {
			respondError(c, err)
			return
		}
		ticket, err := tickets.Raise(ctx, owner, req.Subject, req.Message)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(ctx, ticketKeys(owner.ID)...)
		c.JSON(http.StatusCreated, gin.H{"success": true, "ticket": ticket})
	}
}

// ListMyTicketsHandler returns the caller's tickets, newest first
func ListMyTicketsHandler(tickets *store.SupportLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)
		serveList(c, cache, utils.UserTicketsKey(userID), "tickets", func(ctx context.Context) ([]domain.SupportTicket, error) {
			return tickets.ListByOwner(ctx, userID)
		})
	}
}
