package domain

import (
	"fmt"     // Id formatting
	"strconv" // Suffix parsing
	"strings" // Prefix handling
)

// Ledger tags used as id prefixes
const (
	OrderTag  = "ORD"
	TicketTag = "TKT"
)

// Sequence is the persisted counter behind a ledger's ids
type Sequence struct {
	Name   string `gorm:"primaryKey;size:16"` // Ledger tag
	LastID string `gorm:"size:32"`            // Last allocated id, empty for an empty ledger
}

// FormatSequenceID renders n as <TAG>-NNN. Width 3 is a minimum, ORD-1000 stays ORD-1000.
func FormatSequenceID(tag string, n int64) string {
	return fmt.Sprintf("%s-%03d", tag, n)
}

// ParseSequenceID returns the numeric suffix of a <TAG>-<digits> id
func ParseSequenceID(tag, id string) (int64, error) {
	digits, ok := strings.CutPrefix(id, tag+"-")
	if !ok || digits == "" {
		return 0, NewCorruptSequenceError(id)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, NewCorruptSequenceError(id)
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return 0, NewCorruptSequenceError(id)
	}
	return n, nil
}

// NextSequenceID allocates the id following lastID. An empty lastID means the ledger is empty.
func NextSequenceID(tag, lastID string) (string, error) {
	if lastID == "" {
		return FormatSequenceID(tag, 1), nil
	}
	n, err := ParseSequenceID(tag, lastID)
	if err != nil {
		return "", err
	}
	return FormatSequenceID(tag, n+1), nil
}
