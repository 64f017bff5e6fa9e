package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPrice(t *testing.T) {
	total, ok := TotalPrice(BottleSize500ml, 20)
	assert.True(t, ok)
	assert.Equal(t, int64(900), total)

	total, ok = TotalPrice(BottleSize1L, 5)
	assert.True(t, ok)
	assert.Equal(t, int64(325), total)

	total, ok = TotalPrice(BottleSize250ml, 50)
	assert.True(t, ok)
	assert.Equal(t, int64(1500), total)

	_, ok = TotalPrice("2L", 1)
	assert.False(t, ok)
}

func TestTotalPriceOverflow(t *testing.T) {
	_, ok := TotalPrice(BottleSize1L, 1<<62)
	assert.False(t, ok)

	limit := int(math.MaxInt64 / 65)
	total, ok := TotalPrice(BottleSize1L, limit)
	assert.True(t, ok)
	assert.Equal(t, int64(limit)*65, total)

	_, ok = TotalPrice(BottleSize1L, limit+1)
	assert.False(t, ok)
}

func TestOrderStatusClassification(t *testing.T) {
	for _, s := range []OrderStatus{OrderDelivered, OrderCancelled, OrderRejected} {
		assert.True(t, s.IsTerminal(), s)
	}
	for _, s := range []OrderStatus{OrderPending, OrderAccepted, OrderProcessing, OrderShipped} {
		assert.False(t, s.IsTerminal(), s)
	}
	assert.False(t, OrderPending.IsAdminSettable())
	assert.False(t, OrderStatus("lost").IsAdminSettable())
	assert.True(t, OrderShipped.IsAdminSettable())
	assert.True(t, OrderCancelled.IsAdminSettable())
}

func TestErrorKinds(t *testing.T) {
	err := NewPersistenceError("failed to save order", assert.AnError)
	assert.True(t, IsKind(err, PersistenceError))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, ErrorKind(0), KindOf(assert.AnError))
	assert.Equal(t, "ConflictError", ConflictError.String())
}
