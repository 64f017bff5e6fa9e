package store

import (
	"bottle_orders/internal/config"
	"bottle_orders/internal/db"
	"bottle_orders/internal/domain"
	"bottle_orders/internal/events"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", IsProd: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func seedDefault(t *testing.T, gdb *gorm.DB) {
	t.Helper()
	data, err := db.ParseSeed(db.DefaultSeed)
	require.NoError(t, err)
	require.NoError(t, db.Seed(gdb, data))
}

// stepClock advances one minute per call
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Minute)
	return c.t
}

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// slowPublisher stands in for a broker that takes delay to acknowledge
type slowPublisher struct {
	delay time.Duration
}

func (p slowPublisher) Publish(ctx context.Context, _ events.Event) error {
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func testUser(id, name string) *domain.User {
	return &domain.User{ID: id, Name: name}
}

func validOrder() domain.NewOrder {
	return domain.NewOrder{
		BottleSize:      domain.BottleSize1L,
		Quantity:        5,
		DeliveryName:    "Ravi Kumar",
		DeliveryPhone:   "9876543210",
		DeliveryAddress: "12 MG Road, Bangalore",
	}
}
