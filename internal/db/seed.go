package db

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/utils"  // Password hashing
	_ "embed"                       // Embedded seed fixture
	"fmt"                           // Error wrapping
	"time"                          // Seed timestamps

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gopkg.in/yaml.v3"           // Seed fixture format
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/clause"        // Conflict handling
)

//go:embed fixtures/seed.yaml
var DefaultSeed []byte

// SeedData is the fixture layout
type SeedData struct {
	Admin   SeedAdmin    `yaml:"admin"`
	Users   []SeedUser   `yaml:"users"`
	Orders  []SeedOrder  `yaml:"orders"`
	Tickets []SeedTicket `yaml:"tickets"`
}

type SeedAdmin struct {
	ID             string `yaml:"id"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Name           string `yaml:"name"`
	ProfilePicture string `yaml:"profilePicture"`
}

type SeedUser struct {
	ID             string    `yaml:"id"`
	Title          string    `yaml:"title"`
	Name           string    `yaml:"name"`
	EmailOrMobile  string    `yaml:"emailOrMobile"`
	Password       string    `yaml:"password"`
	Address        string    `yaml:"address"`
	ProfilePicture string    `yaml:"profilePicture"`
	Bio            string    `yaml:"bio"`
	IsProfileSetup bool      `yaml:"isProfileSetup"`
	CreatedAt      time.Time `yaml:"createdAt"`
}

type SeedOrder struct {
	ID              string             `yaml:"id"`
	UserID          string             `yaml:"userId"`
	UserName        string             `yaml:"userName"`
	BottleSize      domain.BottleSize  `yaml:"bottleSize"`
	Quantity        int                `yaml:"quantity"`
	DesignImage     string             `yaml:"designImage"`
	DeliveryName    string             `yaml:"deliveryName"`
	DeliveryPhone   string             `yaml:"deliveryPhone"`
	DeliveryAddress string             `yaml:"deliveryAddress"`
	Status          domain.OrderStatus `yaml:"status"`
	AdminNote       string             `yaml:"adminNote"`
	CreatedAt       time.Time          `yaml:"createdAt"`
	UpdatedAt       time.Time          `yaml:"updatedAt"`
}

type SeedTicket struct {
	ID        string              `yaml:"id"`
	UserID    string              `yaml:"userId"`
	UserName  string              `yaml:"userName"`
	Subject   string              `yaml:"subject"`
	Message   string              `yaml:"message"`
	Status    domain.TicketStatus `yaml:"status"`
	Reply     string              `yaml:"reply"`
	CreatedAt time.Time           `yaml:"createdAt"`
}

// ParseSeed decodes a YAML fixture
func ParseSeed(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &data, nil
}

// Seed inserts fixture records. Records whose key already exists are left untouched.
func Seed(db *gorm.DB, data *SeedData) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if data.Admin.Username != "" {
			digest, err := utils.HashPassword(data.Admin.Password)
			if err != nil {
				return err
			}
			admin := domain.Admin{
				ID:             data.Admin.ID,
				Username:       data.Admin.Username,
				PasswordDigest: digest,
				Name:           data.Admin.Name,
				ProfilePicture: data.Admin.ProfilePicture,
			}
			if err := createIfAbsent(tx, &admin); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
		}
		for _, u := range data.Users {
			digest, err := utils.HashPassword(u.Password)
			if err != nil {
				return err
			}
			user := domain.User{
				ID:             u.ID,
				Title:          u.Title,
				Name:           u.Name,
				EmailOrMobile:  u.EmailOrMobile,
				PasswordDigest: digest,
				Address:        u.Address,
				ProfilePicture: u.ProfilePicture,
				Bio:            u.Bio,
				IsProfileSetup: u.IsProfileSetup,
				CreatedAt:      u.CreatedAt,
				UpdatedAt:      u.CreatedAt,
			}
			if err := createIfAbsent(tx, &user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}
		var highestOrder, highestTicket int64
		for _, o := range data.Orders {
			n, err := domain.ParseSequenceID(domain.OrderTag, o.ID)
			if err != nil {
				return err
			}
			highestOrder = max(highestOrder, n)
			total, ok := domain.TotalPrice(o.BottleSize, o.Quantity)
			if !ok {
				return fmt.Errorf("seed order %s: unknown bottle size %q", o.ID, o.BottleSize)
			}
			order := domain.Order{
				ID:              o.ID,
				UserID:          o.UserID,
				UserName:        o.UserName,
				BottleSize:      o.BottleSize,
				Quantity:        o.Quantity,
				DesignImage:     o.DesignImage,
				DeliveryName:    o.DeliveryName,
				DeliveryPhone:   o.DeliveryPhone,
				DeliveryAddress: o.DeliveryAddress,
				Status:          o.Status,
				TotalPrice:      total,
				AdminNote:       o.AdminNote,
				CreatedAt:       o.CreatedAt,
				UpdatedAt:       o.UpdatedAt,
			}
			if err := createIfAbsent(tx, &order); err != nil {
				return fmt.Errorf("seed order %s: %w", o.ID, err)
			}
		}
		for _, tk := range data.Tickets {
			n, err := domain.ParseSequenceID(domain.TicketTag, tk.ID)
			if err != nil {
				return err
			}
			highestTicket = max(highestTicket, n)
			ticket := domain.SupportTicket{
				ID:        tk.ID,
				UserID:    tk.UserID,
				UserName:  tk.UserName,
				Subject:   tk.Subject,
				Message:   tk.Message,
				Status:    tk.Status,
				Reply:     tk.Reply,
				CreatedAt: tk.CreatedAt,
				UpdatedAt: tk.CreatedAt,
			}
			if err := createIfAbsent(tx, &ticket); err != nil {
				return fmt.Errorf("seed ticket %s: %w", tk.ID, err)
			}
		}
		// Counters that already exist must not fall behind the seeded ids
		if err := raiseSequence(tx, domain.OrderTag, highestOrder); err != nil {
			return err
		}
		if err := raiseSequence(tx, domain.TicketTag, highestTicket); err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"users":   len(data.Users),   // Seeded users
			"orders":  len(data.Orders),  // Seeded orders
			"tickets": len(data.Tickets), // Seeded tickets
		}).Info("Seed completed")
		return nil
	})
}

func createIfAbsent(tx *gorm.DB, value any) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(value).Error
}

func raiseSequence(tx *gorm.DB, tag string, floor int64) error {
	var seq domain.Sequence
	err := tx.Where("name = ?", tag).Limit(1).Find(&seq).Error
	if err != nil || seq.Name == "" {
		return err // No counter yet, the ledger bootstraps from its records
	}
	current := int64(0)
	if seq.LastID != "" {
		if current, err = domain.ParseSequenceID(tag, seq.LastID); err != nil {
			return err
		}
	}
	if current >= floor {
		return nil
	}
	return tx.Model(&domain.Sequence{}).
		Where("name = ?", tag).
		Update("last_id", domain.FormatSequenceID(tag, floor)).Error
}
