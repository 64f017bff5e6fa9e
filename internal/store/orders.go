package store

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/events" // Lifecycle events
	"context"                       // Request context
	"strings"                       // Input trimming
	"time"                          // Timestamps

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

const (
	orderNotFound    = "Order not found"
	quantityTooLarge = "Quantity is too large"
)

// Newest first. Ids of equal width compare numerically, wider ids are newer.
const newestFirst = "created_at desc, length(id) desc, id desc"

// OrderLedger holds order records and owns the order lifecycle
type OrderLedger struct {
	ledger
	seq *sequencer
}

// NewOrderLedger creates an order ledger on db. A nil publisher drops events.
func NewOrderLedger(db *gorm.DB, publisher events.Publisher) *OrderLedger {
	return &OrderLedger{
		ledger: newLedger(db, publisher),
		seq:    newSequencer(domain.OrderTag, &domain.Order{}),
	}
}

func validateNewOrder(in *domain.NewOrder) error {
	in.DeliveryName = strings.TrimSpace(in.DeliveryName)
	in.DeliveryPhone = strings.TrimSpace(in.DeliveryPhone)
	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)
	if in.BottleSize == "" || in.DeliveryName == "" || in.DeliveryPhone == "" || in.DeliveryAddress == "" {
		return domain.NewValidationError("All required fields must be provided")
	}
	if _, ok := domain.UnitPrice(in.BottleSize); !ok {
		return domain.NewValidationError("Invalid bottle size")
	}
	if in.Quantity < 1 {
		return domain.NewValidationError("Quantity must be at least 1")
	}
	if _, ok := domain.TotalPrice(in.BottleSize, in.Quantity); !ok {
		return domain.NewValidationError(quantityTooLarge)
	}
	return nil
}

// Place creates a pending order for owner with the next ORD- id
func (l *OrderLedger) Place(ctx context.Context, owner *domain.User, in domain.NewOrder) (*domain.Order, error) {
	if err := validateNewOrder(&in); err != nil {
		return nil, err
	}
	total, _ := domain.TotalPrice(in.BottleSize, in.Quantity)

	var order domain.Order
	l.seq.mu.Lock()
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := l.seq.next(tx)
		if err != nil {
			return err
		}
		now := l.now()
		order = domain.Order{
			ID:              id,
			UserID:          owner.ID,
			UserName:        owner.Name, // Snapshot, never refreshed
			BottleSize:      in.BottleSize,
			Quantity:        in.Quantity,
			DesignImage:     in.DesignImage,
			DeliveryName:    in.DeliveryName,
			DeliveryPhone:   in.DeliveryPhone,
			DeliveryAddress: in.DeliveryAddress,
			Status:          domain.OrderPending,
			TotalPrice:      total,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return tx.Create(&order).Error
	})
	l.seq.mu.Unlock()
	if err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to place order")
	}
	logrus.WithFields(logrus.Fields{
		"user_id":     owner.ID,         // Owner
		"order_id":    order.ID,         // Allocated id
		"bottle_size": order.BottleSize, // Size
		"quantity":    order.Quantity,   // Bottles
		"total_price": order.TotalPrice, // Price
	}).Info("Order placed")
	l.publish(ctx, orderEvent(events.OrderCreated, &order))
	return &order, nil
}

// Get looks an order up by id
func (l *OrderLedger) Get(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	if err := l.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to fetch order")
	}
	return &order, nil
}

// GetOwned looks an order up by id, reporting orders of other users as not found
func (l *OrderLedger) GetOwned(ctx context.Context, ownerID, id string) (*domain.Order, error) {
	var order domain.Order
	if err := l.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&order).Error; err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to fetch order")
	}
	return &order, nil
}

// ListByOwner returns the owner's orders, newest first
func (l *OrderLedger) ListByOwner(ctx context.Context, ownerID string) ([]domain.Order, error) {
	orders := []domain.Order{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(newestFirst).
		Find(&orders).Error
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch orders", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first, optionally narrowed to one status
func (l *OrderLedger) ListAll(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := l.db.WithContext(ctx).Model(&domain.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order(newestFirst).Find(&orders).Error; err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch orders", err)
	}
	return orders, nil
}

// Modify changes quantity, address or phone of a pending order owned by ownerID.
// A quantity change recomputes totalPrice.
func (l *OrderLedger) Modify(ctx context.Context, ownerID, id string, mod domain.OrderModification) (*domain.Order, error) {
	fields := map[string]any{}
	if mod.Quantity != nil && *mod.Quantity < 1 {
		return nil, domain.NewValidationError("Quantity must be at least 1")
	}
	if mod.DeliveryAddress != nil {
		if addr := strings.TrimSpace(*mod.DeliveryAddress); addr != "" {
			fields["delivery_address"] = addr
		}
	}
	if mod.DeliveryPhone != nil {
		if phone := strings.TrimSpace(*mod.DeliveryPhone); phone != "" {
			fields["delivery_phone"] = phone
		}
	}
	// Blank address or phone count as absent
	if mod.Quantity == nil && len(fields) == 0 {
		return nil, domain.NewValidationError("Nothing to update")
	}
	var order domain.Order
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", id, ownerID).First(&order).Error; err != nil {
			return err
		}
		if order.Status != domain.OrderPending {
			return domain.NewConflictError("Only pending orders can be modified")
		}
		if mod.Quantity != nil {
			total, ok := domain.TotalPrice(order.BottleSize, *mod.Quantity)
			if !ok {
				return domain.NewValidationError(quantityTooLarge)
			}
			fields["quantity"] = *mod.Quantity
			fields["total_price"] = total
		}
		fields["updated_at"] = l.now()
		if err := tx.Model(&order).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to update order")
	}
	logrus.WithFields(logrus.Fields{
		"user_id":     ownerID,          // Owner
		"order_id":    order.ID,         // Order
		"quantity":    order.Quantity,   // Bottles after change
		"total_price": order.TotalPrice, // Price after change
	}).Info("Order modified")
	l.publish(ctx, orderEvent(events.OrderModified, &order))
	return &order, nil
}

// Cancel moves a pending order owned by ownerID to cancelled
func (l *OrderLedger) Cancel(ctx context.Context, ownerID, id string) (*domain.Order, error) {
	var order domain.Order
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ? AND user_id = ?", id, ownerID).First(&order).Error; err != nil {
			return err
		}
		if order.Status != domain.OrderPending {
			return domain.NewConflictError("Only pending orders can be cancelled")
		}
		now := l.now()
		if err := tx.Model(&order).Updates(map[string]any{"status": domain.OrderCancelled, "updated_at": now}).Error; err != nil {
			return err
		}
		order.Status, order.UpdatedAt = domain.OrderCancelled, now
		return nil
	})
	if err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to cancel order")
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  ownerID,  // Owner
		"order_id": order.ID, // Order
	}).Info("Order cancelled")
	l.publish(ctx, orderEvent(events.OrderCancelled, &order))
	return &order, nil
}

// UpdateStatus applies an admin status and/or note change.
// Admin may move between non-terminal states freely; terminal orders only accept a note.
func (l *OrderLedger) UpdateStatus(ctx context.Context, id string, upd domain.StatusUpdate) (*domain.Order, error) {
	if upd.Status == nil && upd.AdminNote == nil {
		return nil, domain.NewValidationError("Status or admin note is required")
	}
	if upd.Status != nil && !upd.Status.IsAdminSettable() {
		return nil, domain.NewValidationError("Invalid order status")
	}
	var order domain.Order
	var previous domain.OrderStatus
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}
		previous = order.Status
		fields := map[string]any{"updated_at": l.now()}
		if upd.Status != nil {
			if order.Status.IsTerminal() {
				return domain.NewConflictError("Order is " + string(order.Status) + " and can no longer change status")
			}
			fields["status"] = *upd.Status
		}
		if upd.AdminNote != nil {
			fields["admin_note"] = *upd.AdminNote
		}
		if err := tx.Model(&order).Updates(fields).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, wrapDBError(err, orderNotFound, "Failed to update order status")
	}
	logrus.WithFields(logrus.Fields{
		"order_id":  order.ID,                             // Order
		"from":      previous,                             // Status before
		"to":        order.Status,                         // Status after
		"timestamp": order.UpdatedAt.Format(time.RFC3339), // Transition time
	}).Info("Order status updated")
	l.publish(ctx, orderEvent(events.OrderStatusChanged, &order))
	return &order, nil
}

func orderEvent(kind string, order *domain.Order) events.Event {
	return events.Event{
		Type:       kind,
		RecordID:   order.ID,
		OwnerID:    order.UserID,
		Status:     string(order.Status),
		OccurredAt: order.UpdatedAt,
		Record:     order,
	}
}
