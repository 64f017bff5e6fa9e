package domain

import "time"

// TicketStatus is a state of the support ticket lifecycle
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
)

// SupportTicket Model
type SupportTicket struct {
	ID        string       `gorm:"primaryKey;size:32" json:"id"`                // TKT-NNN
	UserID    string       `gorm:"not null;index;size:36" json:"userId"`        // Owning user
	UserName  string       `gorm:"not null" json:"userName"`                    // Owner name at creation
	Subject   string       `gorm:"not null" json:"subject"`                     // Short summary
	Message   string       `gorm:"type:text;not null" json:"message"`           // Body
	Status    TicketStatus `gorm:"not null;size:16;default:open" json:"status"` // Lifecycle state
	Reply     string       `gorm:"type:text" json:"reply"`                      // Admin reply
	CreatedAt time.Time    `gorm:"index" json:"createdAt"`                      // Raise time
	UpdatedAt time.Time    `json:"updatedAt"`                                   // Last reply/resolve
}

// TableName pins the table name
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// ContactMessage Model
type ContactMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`      // Opaque unique id
	Name      string    `gorm:"not null" json:"name"`              // Sender name
	Email     string    `gorm:"not null" json:"email"`             // Sender email
	Message   string    `gorm:"type:text;not null" json:"message"` // Body
	CreatedAt time.Time `gorm:"index" json:"createdAt"`            // Submission time
}
