// Package store holds the gorm-backed ledgers: identities, orders, support tickets
// and contact messages.
package store

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/events" // Lifecycle events
	"context"                       // Request context
	"errors"                        // Error matching
	"sync"                          // Per-ledger allocation lock
	"time"                          // Clock

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Row locking and conflicts
)

// wrapDBError converts a gorm failure into a domain error.
// Domain errors pass through unchanged.
func wrapDBError(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError(notFoundMsg)
	}
	return domain.NewPersistenceError(failMsg, err)
}

// lockForUpdate adds SELECT ... FOR UPDATE where the dialect supports it
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// sequencer allocates <TAG>-NNN ids for one ledger.
// The mutex serializes allocation inside the process; the locked counter row
// serializes it across processes sharing the database.
type sequencer struct {
	mu    sync.Mutex
	tag   string
	model any // Ledger model used to bootstrap a missing counter
}

func newSequencer(tag string, model any) *sequencer {
	return &sequencer{tag: tag, model: model}
}

// next allocates the following id inside tx. Callers hold s.mu until tx commits.
func (s *sequencer) next(tx *gorm.DB) (string, error) {
	seq, err := s.load(tx)
	if err != nil {
		return "", err
	}
	id, err := domain.NextSequenceID(s.tag, seq.LastID)
	if err != nil {
		return "", err
	}
	if err := tx.Model(&domain.Sequence{}).Where("name = ?", s.tag).Update("last_id", id).Error; err != nil {
		return "", domain.NewPersistenceError("failed to allocate id", err)
	}
	return id, nil
}

func (s *sequencer) load(tx *gorm.DB) (*domain.Sequence, error) {
	var seq domain.Sequence
	err := lockForUpdate(tx).Where("name = ?", s.tag).First(&seq).Error
	if err == nil {
		return &seq, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewPersistenceError("failed to read sequence", err)
	}
	lastID, err := s.highestID(tx)
	if err != nil {
		return nil, err
	}
	seed := domain.Sequence{Name: s.tag, LastID: lastID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to create sequence", err)
	}
	if err := lockForUpdate(tx).Where("name = ?", s.tag).First(&seq).Error; err != nil {
		return nil, domain.NewPersistenceError("failed to read sequence", err)
	}
	return &seq, nil
}

// highestID scans the ledger for its highest-numbered id. Creation order is not
// used because imported records may be timestamped out of id order.
func (s *sequencer) highestID(tx *gorm.DB) (string, error) {
	var ids []string
	if err := tx.Model(s.model).Pluck("id", &ids).Error; err != nil {
		return "", domain.NewPersistenceError("failed to scan ledger", err)
	}
	var best int64
	highest := ""
	for _, id := range ids {
		n, err := domain.ParseSequenceID(s.tag, id)
		if err != nil {
			return "", err
		}
		if n > best {
			best, highest = n, id
		}
	}
	return highest, nil
}

// ledger carries what every ledger shares
type ledger struct {
	db     *gorm.DB
	events events.Publisher
	now    func() time.Time
}

func newLedger(db *gorm.DB, publisher events.Publisher) ledger {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return ledger{db: db, events: publisher, now: time.Now}
}

// publish sends a lifecycle event; failures are logged and never surface to the caller
func (l ledger) publish(ctx context.Context, event events.Event) {
	if err := l.events.Publish(ctx, event); err != nil {
		logrus.WithFields(logrus.Fields{
			"type":      event.Type,     // Event type
			"record_id": event.RecordID, // Record id
			"error":     err.Error(),    // Error message
		}).Warn("Failed to publish lifecycle event")
	}
}
