package domain

import (
	"math" // Overflow bound
	"time" // Timestamps
)

// BottleSize is one of the three printable bottle sizes
type BottleSize string

const (
	BottleSize1L    BottleSize = "1L"
	BottleSize500ml BottleSize = "500ml"
	BottleSize250ml BottleSize = "250ml"
)

// Unit prices in whole currency units
var bottlePrices = map[BottleSize]int64{
	BottleSize1L:    65,
	BottleSize500ml: 45,
	BottleSize250ml: 30,
}

// UnitPrice returns the per-bottle price and whether the size is known
func UnitPrice(size BottleSize) (int64, bool) {
	p, ok := bottlePrices[size]
	return p, ok
}

// TotalPrice computes unitPrice(size) * quantity.
// It reports false for an unknown size or a product that does not fit in int64.
func TotalPrice(size BottleSize, quantity int) (int64, bool) {
	p, ok := UnitPrice(size)
	if !ok || int64(quantity) > math.MaxInt64/p {
		return 0, false
	}
	return p * int64(quantity), true
}

// OrderStatus is a state of the order lifecycle
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderAccepted   OrderStatus = "accepted"
	OrderRejected   OrderStatus = "rejected"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every lifecycle state
var OrderStatuses = []OrderStatus{
	OrderPending, OrderAccepted, OrderRejected, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

// IsKnown reports whether s is a lifecycle state
func (s OrderStatus) IsKnown() bool {
	return s == OrderPending || s.IsAdminSettable()
}

// IsTerminal reports whether no further status transition is permitted
func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled || s == OrderRejected
}

// IsAdminSettable reports whether an admin may move an order into s
func (s OrderStatus) IsAdminSettable() bool {
	switch s {
	case OrderAccepted, OrderRejected, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Order Model
type Order struct {
	ID              string      `gorm:"primaryKey;size:32" json:"id"`                         // ORD-NNN
	UserID          string      `gorm:"not null;index;size:36" json:"userId"`                 // Owning user
	UserName        string      `gorm:"not null" json:"userName"`                             // Owner name at creation
	BottleSize      BottleSize  `gorm:"not null;size:8" json:"bottleSize"`                    // 1L / 500ml / 250ml
	Quantity        int         `gorm:"not null;check:quantity > 0" json:"quantity"`          // Number of bottles
	DesignImage     string      `gorm:"type:text" json:"designImage"`                         // Blob reference or empty
	DeliveryName    string      `gorm:"not null" json:"deliveryName"`                         // Recipient
	DeliveryPhone   string      `gorm:"not null;size:32" json:"deliveryPhone"`                // Recipient phone
	DeliveryAddress string      `gorm:"not null" json:"deliveryAddress"`                      // Recipient address
	Status          OrderStatus `gorm:"not null;index;size:16;default:pending" json:"status"` // Lifecycle state
	TotalPrice      int64       `gorm:"not null" json:"totalPrice"`                           // unitPrice * quantity
	AdminNote       string      `gorm:"type:text" json:"adminNote"`                           // Admin free text
	CreatedAt       time.Time   `gorm:"index" json:"createdAt"`                               // Placement time
	UpdatedAt       time.Time   `json:"updatedAt"`                                            // Last transition
}

// NewOrder carries the owner-supplied fields of a placement
type NewOrder struct {
	BottleSize      BottleSize
	Quantity        int
	DesignImage     string
	DeliveryName    string
	DeliveryPhone   string
	DeliveryAddress string
}

// OrderModification lists the fields an owner may change while the order is pending
type OrderModification struct {
	Quantity        *int
	DeliveryAddress *string
	DeliveryPhone   *string
}

// StatusUpdate is an admin-driven change; either field may be absent
type StatusUpdate struct {
	Status    *OrderStatus
	AdminNote *string
}
