package store

import (
	"bottle_orders/internal/domain"
	"bottle_orders/internal/events"
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSupportLedger(t *testing.T) (*SupportLedger, *recorder) {
	gdb := openTestDB(t)
	rec := &recorder{}
	l := NewSupportLedger(gdb, rec)
	l.now = newStepClock().Now
	return l, rec
}

func TestTicketLifecycle(t *testing.T) {
	l, rec := newSupportLedger(t)
	ctx := context.Background()

	ticket, err := l.Raise(ctx, testUser("u1", "Ravi Kumar"), "Bottle leak", "Two bottles arrived open")
	require.NoError(t, err)
	assert.Equal(t, "TKT-001", ticket.ID)
	assert.Equal(t, domain.TicketOpen, ticket.Status)
	assert.Empty(t, ticket.Reply)
	assert.Equal(t, "Ravi Kumar", ticket.UserName)

	replied, err := l.Reply(ctx, ticket.ID, "Replacement on the way")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketInProgress, replied.Status)
	assert.Equal(t, "Replacement on the way", replied.Reply)
	assert.True(t, replied.UpdatedAt.After(ticket.UpdatedAt))

	resolved, err := l.Resolve(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, resolved.Status)
	assert.Equal(t, "Replacement on the way", resolved.Reply)

	_, err = l.Reply(ctx, ticket.ID, "Late reply")
	assert.True(t, domain.IsKind(err, domain.ConflictError))
	_, err = l.Resolve(ctx, ticket.ID)
	assert.True(t, domain.IsKind(err, domain.ConflictError))

	stored, err := l.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.TicketResolved, stored[0].Status)
	assert.Equal(t, "Replacement on the way", stored[0].Reply)
	assert.True(t, stored[0].UpdatedAt.Equal(resolved.UpdatedAt))

	assert.Equal(t, []string{events.TicketCreated, events.TicketReplied, events.TicketResolved}, rec.types())
}

func TestResolveOpenTicketDirectly(t *testing.T) {
	l, _ := newSupportLedger(t)
	ctx := context.Background()
	ticket, err := l.Raise(ctx, testUser("u1", "Ravi"), "Invoice", "Need a GST invoice")
	require.NoError(t, err)

	resolved, err := l.Resolve(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketResolved, resolved.Status)
	assert.Empty(t, resolved.Reply)
}

func TestTicketValidation(t *testing.T) {
	l, _ := newSupportLedger(t)
	ctx := context.Background()

	_, err := l.Raise(ctx, testUser("u1", "Ravi"), "  ", "body")
	assert.True(t, domain.IsKind(err, domain.ValidationError))
	_, err = l.Raise(ctx, testUser("u1", "Ravi"), "subject", "")
	assert.True(t, domain.IsKind(err, domain.ValidationError))

	ticket, err := l.Raise(ctx, testUser("u1", "Ravi"), "subject", "body")
	require.NoError(t, err)
	_, err = l.Reply(ctx, ticket.ID, " ")
	assert.True(t, domain.IsKind(err, domain.ValidationError))

	_, err = l.Reply(ctx, "TKT-404", "hello")
	assert.True(t, domain.IsKind(err, domain.NotFoundError))
	_, err = l.Resolve(ctx, "TKT-404")
	assert.True(t, domain.IsKind(err, domain.NotFoundError))
}

func TestConcurrentRaiseAllocatesConsecutiveIDs(t *testing.T) {
	l, _ := newSupportLedger(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 2)
	for i, owner := range []*domain.User{testUser("u1", "Ravi"), testUser("u2", "Priya")} {
		wg.Add(1)
		go func(i int, owner *domain.User) {
			defer wg.Done()
			ticket, err := l.Raise(ctx, owner, "Question", "When do you deliver?")
			if assert.NoError(t, err) {
				ids[i] = ticket.ID
			}
		}(i, owner)
	}
	wg.Wait()

	sort.Strings(ids)
	assert.Equal(t, []string{"TKT-001", "TKT-002"}, ids)
}

func TestSeededTicketsContinueSequence(t *testing.T) {
	l, _ := newSupportLedger(t)
	seedDefault(t, l.db)
	ctx := context.Background()

	ticket, err := l.Raise(ctx, testUser("u2", "Priya Sharma"), "Design upload", "Upload fails for PNG")
	require.NoError(t, err)
	assert.Equal(t, "TKT-002", ticket.ID)

	all, err := l.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "TKT-002", all[0].ID)

	mine, err := l.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, domain.TicketInProgress, mine[0].Status)
}

func TestRaisePublishesOutsideAllocationLock(t *testing.T) {
	const delay = 300 * time.Millisecond
	l := NewSupportLedger(openTestDB(t), slowPublisher{delay: delay})
	ctx := context.Background()

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.Raise(ctx, testUser("u1", "Ravi"), "Question", "When do you deliver?")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Less(t, time.Since(start), 2*delay)
}
