package api

import (
	"bottle_orders/internal/domain"     // Importing domain models
	"bottle_orders/internal/middleware" // Context keys
	"bottle_orders/internal/store"      // Ledgers
	"bottle_orders/internal/utils"      // Cache keys
	"context"                           // Request context
	"net/http"                          // HTTP status codes

	"github.com/gin-gonic/gin"          // Gin web framework
	"github.com/sirupsen/logrus"        // Logrus for structured logging
	qrcode "github.com/skip2/go-qrcode" // QR code rendering
)

const qrSize = 256 // QR image edge in pixels

// PlaceOrderRequest represents a new order
type PlaceOrderRequest struct {
	BottleSize      string `json:"bottleSize"`      // 1L / 500ml / 250ml
	Quantity        int    `json:"quantity"`        // Number of bottles
	DesignImage     string `json:"designImage"`     // Optional blob reference
	DeliveryName    string `json:"deliveryName"`    // Recipient
	DeliveryPhone   string `json:"deliveryPhone"`   // Recipient phone
	DeliveryAddress string `json:"deliveryAddress"` // Recipient address
}

// ModifyOrderRequest lists the fields an owner may change while the order is pending
type ModifyOrderRequest struct {
	Quantity        *int    `json:"quantity"`        // New quantity
	DeliveryAddress *string `json:"deliveryAddress"` // New address
	DeliveryPhone   *string `json:"deliveryPhone"`   // New phone
}

// PlaceOrderHandler creates a pending order for the caller
func PlaceOrderHandler(identity *store.IdentityStore, orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		ctx := c.Request.Context()
		owner, err := identity.GetUser(ctx, c.GetString(middleware.UserIDKey)) // Owner name is snapshotted on the order
		if err != nil {
			respondError(c, err)
			return
		}
		order, err := orders.Place(ctx, owner, domain.NewOrder{
			BottleSize:      domain.BottleSize(req.BottleSize),
			Quantity:        req.Quantity,
			DesignImage:     req.DesignImage,
			DeliveryName:    req.DeliveryName,
			DeliveryPhone:   req.DeliveryPhone,
			DeliveryAddress: req.DeliveryAddress,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(ctx, orderKeys(owner.ID)...)
		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

// ListMyOrdersHandler returns the caller's orders, newest first
func ListMyOrdersHandler(orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)
		serveList(c, cache, utils.UserOrdersKey(userID), "orders", func(ctx context.Context) ([]domain.Order, error) {
			return orders.ListByOwner(ctx, userID)
		})
	}
}

// GetOrderHandler returns one of the caller's orders
func GetOrderHandler(orders *store.OrderLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.GetOwned(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// ModifyOrderHandler changes quantity, address or phone of the caller's pending order
func ModifyOrderHandler(orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ModifyOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		userID := c.GetString(middleware.UserIDKey)
		order, err := orders.Modify(c.Request.Context(), userID, c.Param("orderId"), domain.OrderModification{
			Quantity:        req.Quantity,
			DeliveryAddress: req.DeliveryAddress,
			DeliveryPhone:   req.DeliveryPhone,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), orderKeys(userID)...)
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// CancelOrderHandler cancels the caller's pending order
func CancelOrderHandler(orders *store.OrderLedger, cache listCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.UserIDKey)
		order, err := orders.Cancel(c.Request.Context(), userID, c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		cache.invalidate(c.Request.Context(), orderKeys(userID)...)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully", "order": order})
	}
}

// OrderQRHandler renders the caller's order id as a PNG QR code for the tracking page
func OrderQRHandler(orders *store.OrderLedger) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := orders.GetOwned(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("orderId"))
		if err != nil {
			respondError(c, err)
			return
		}
		png, err := qrcode.Encode(order.ID, qrcode.Medium, qrSize)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"order_id": order.ID,    // Order
				"error":    err.Error(), // Error message
			}).Error("Failed to render QR code")
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}
