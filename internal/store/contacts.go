package store

import (
	"bottle_orders/internal/domain" // Importing domain models
	"context"                       // Request context
	"regexp"                        // Email shape check
	"strings"                       // Input trimming
	"time"                          // Clock

	"github.com/google/uuid"     // Opaque ids
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactInbox is the append-only store of contact-form submissions
type ContactInbox struct {
	db  *gorm.DB
	now func() time.Time
}

// NewContactInbox creates a contact inbox on db
func NewContactInbox(db *gorm.DB) *ContactInbox {
	return &ContactInbox{db: db, now: time.Now}
}

// Submit appends a contact message
func (c *ContactInbox) Submit(ctx context.Context, name, email, message string) (*domain.ContactMessage, error) {
	name, email, message = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return nil, domain.NewValidationError("All fields are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError("Invalid email format")
	}
	msg := domain.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: c.now(),
	}
	if err := c.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, domain.NewPersistenceError("Failed to submit contact form", err)
	}
	logrus.WithField("contact_id", msg.ID).Info("Contact message received")
	return &msg, nil
}

// List returns every contact message, newest first
func (c *ContactInbox) List(ctx context.Context) ([]domain.ContactMessage, error) {
	messages := []domain.ContactMessage{}
	if err := c.db.WithContext(ctx).Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch contact messages", err)
	}
	return messages, nil
}
