package store

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/events" // Lifecycle events
	"context"                       // Request context
	"strings"                       // Input trimming

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

const ticketNotFound = "Ticket not found"

// SupportLedger holds support tickets and owns the ticket lifecycle
type SupportLedger struct {
	ledger
	seq *sequencer
}

// NewSupportLedger creates a support ledger on db. A nil publisher drops events.
func NewSupportLedger(db *gorm.DB, publisher events.Publisher) *SupportLedger {
	return &SupportLedger{
		ledger: newLedger(db, publisher),
		seq:    newSequencer(domain.TicketTag, &domain.SupportTicket{}),
	}
}

// Raise creates an open ticket for owner with the next TKT- id
func (l *SupportLedger) Raise(ctx context.Context, owner *domain.User, subject, message string) (*domain.SupportTicket, error) {
	subject, message = strings.TrimSpace(subject), strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, domain.NewValidationError("Subject and message are required")
	}

	var ticket domain.SupportTicket
	l.seq.mu.Lock()
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := l.seq.next(tx)
		if err != nil {
			return err
		}
		now := l.now()
		ticket = domain.SupportTicket{
			ID:        id,
			UserID:    owner.ID,
			UserName:  owner.Name, // Snapshot, never refreshed
			Subject:   subject,
			Message:   message,
			Status:    domain.TicketOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return tx.Create(&ticket).Error
	})
	l.seq.mu.Unlock()
	if err != nil {
		return nil, wrapDBError(err, ticketNotFound, "Failed to create support ticket")
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   owner.ID,  // Owner
		"ticket_id": ticket.ID, // Allocated id
	}).Info("Support ticket raised")
	l.publish(ctx, ticketEvent(events.TicketCreated, &ticket))
	return &ticket, nil
}

// ListByOwner returns the owner's tickets, newest first
func (l *SupportLedger) ListByOwner(ctx context.Context, ownerID string) ([]domain.SupportTicket, error) {
	tickets := []domain.SupportTicket{}
	err := l.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order(newestFirst).
		Find(&tickets).Error
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch tickets", err)
	}
	return tickets, nil
}

// ListAll returns every ticket, newest first
func (l *SupportLedger) ListAll(ctx context.Context) ([]domain.SupportTicket, error) {
	tickets := []domain.SupportTicket{}
	if err := l.db.WithContext(ctx).Order(newestFirst).Find(&tickets).Error; err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch tickets", err)
	}
	return tickets, nil
}

// Reply stores the admin reply and moves the ticket to in-progress.
// Resolved tickets accept no further replies.
func (l *SupportLedger) Reply(ctx context.Context, id, reply string) (*domain.SupportTicket, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, domain.NewValidationError("Reply is required")
	}
	ticket, err := l.transition(ctx, id, func(t *domain.SupportTicket) error {
		if t.Status == domain.TicketResolved {
			return domain.NewConflictError("Ticket is already resolved")
		}
		t.Reply = reply
		t.Status = domain.TicketInProgress
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("ticket_id", ticket.ID).Info("Support ticket replied")
	l.publish(ctx, ticketEvent(events.TicketReplied, ticket))
	return ticket, nil
}

// Resolve moves an open or in-progress ticket to resolved
func (l *SupportLedger) Resolve(ctx context.Context, id string) (*domain.SupportTicket, error) {
	ticket, err := l.transition(ctx, id, func(t *domain.SupportTicket) error {
		if t.Status == domain.TicketResolved {
			return domain.NewConflictError("Ticket is already resolved")
		}
		t.Status = domain.TicketResolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("ticket_id", ticket.ID).Info("Support ticket resolved")
	l.publish(ctx, ticketEvent(events.TicketResolved, ticket))
	return ticket, nil
}

// transition loads the ticket under lock, applies change and saves status, reply and updatedAt
func (l *SupportLedger) transition(ctx context.Context, id string, change func(*domain.SupportTicket) error) (*domain.SupportTicket, error) {
	var ticket domain.SupportTicket
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).Where("id = ?", id).First(&ticket).Error; err != nil {
			return err
		}
		if err := change(&ticket); err != nil {
			return err
		}
		ticket.UpdatedAt = l.now()
		return tx.Model(&ticket).Select("status", "reply", "updated_at").Updates(&ticket).Error
	})
	if err != nil {
		return nil, wrapDBError(err, ticketNotFound, "Failed to update ticket")
	}
	return &ticket, nil
}

func ticketEvent(kind string, ticket *domain.SupportTicket) events.Event {
	return events.Event{
		Type:       kind,
		RecordID:   ticket.ID,
		OwnerID:    ticket.UserID,
		Status:     string(ticket.Status),
		OccurredAt: ticket.UpdatedAt,
		Record:     ticket,
	}
}
