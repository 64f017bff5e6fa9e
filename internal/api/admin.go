package api

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/store"  // Ledgers
	"bottle_orders/internal/utils"  // Cache keys
	"context"                       // Request context
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// StatusRequest is an admin status and/or note change
type StatusRequest struct {
	Status    *domain.OrderStatus `json:"status"`    // New status
	AdminNote *string             `json:"adminNote"` // Note shown to the customer
}

// ReplyRequest is an admin reply to a ticket
type ReplyRequest struct {
	Reply string `json:"reply"` // Reply text
}

// ListAllOrdersHandler returns every order, newest first, optionally filtered by ?status=
func ListAllOrdersHandler(orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := domain.OrderStatus(c.Query("status"))
		cacheKey := utils.AllOrdersKey
		if status != "" {
			// Reject filters that cannot match anything
			if !status.IsKnown() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
			cacheKey = utils.OrdersByStatusKey(string(status))
		}
		serveList(c, cache, cacheKey, "orders", func(ctx context.Context) ([]domain.Order, error) {
			return orders.ListAll(ctx, status)
		})
	}
}

// UpdateOrderStatusHandler applies an admin status and/or note change
func UpdateOrderStatusHandler(orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StatusRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), domain.StatusUpdate{
			Status:    req.Status,
			AdminNote: req.AdminNote,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), orderKeys(order.UserID)...)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// ListAllTicketsHandler returns every support ticket, newest first
func ListAllTicketsHandler(tickets *store.SupportLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveList(c, cache, utils.AllTicketsKey, "tickets", tickets.ListAll)
	}
}

// ReplyTicketHandler stores the admin reply and moves the ticket to in-progress
func ReplyTicketHandler(tickets *store.SupportLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReplyRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Reply is required"})
			return
		}
		ticket, err := tickets.Reply(c.Request.Context(), c.Param("ticketId"), req.Reply)
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), ticketKeys(ticket.UserID)...)
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
	}
}

// ResolveTicketHandler marks a ticket resolved
func ResolveTicketHandler(tickets *store.SupportLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		ticket, err := tickets.Resolve(c.Request.Context(), c.Param("ticketId"))
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), ticketKeys(ticket.UserID)...)
		c.JSON(http.StatusOK, gin.H{"success": true, "ticket": ticket})
	}
}

// ListContactsHandler returns every contact message, newest first
func ListContactsHandler(inbox *store.ContactInbox, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveList(c, cache, utils.AllContactsKey, "messages", inbox.List)
	}
}
