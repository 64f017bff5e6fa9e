package domain

import "time"

// User Model
type User struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`                  // Opaque unique id
	Title          string    `gorm:"size:16" json:"title"`                          // Mr. / Ms. / ...
	Name           string    `gorm:"not null" json:"name"`                          // Display name
	EmailOrMobile  string    `gorm:"unique;not null;size:191" json:"emailOrMobile"` // Unique login key
	PasswordDigest string    `gorm:"not null" json:"-"`                             // Hashed password
	Address        string    `json:"address"`                                       // Default delivery address
	ProfilePicture string    `gorm:"type:text" json:"profilePicture"`               // Blob reference or empty
	Bio            string    `gorm:"type:text" json:"bio"`                          // Free text
	IsProfileSetup bool      `gorm:"not null;default:false" json:"isProfileSetup"`  // Profile wizard completed
	CreatedAt      time.Time `json:"createdAt"`                                     // Registration time
	UpdatedAt      time.Time `json:"updatedAt"`                                     // Last profile change
}

// Admin Model
type Admin struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`             // Opaque unique id
	Username       string    `gorm:"unique;not null;size:191" json:"username"` // Unique login key
	PasswordDigest string    `gorm:"not null" json:"-"`                        // Hashed password
	Name           string    `json:"name"`                                     // Display name
	ProfilePicture string    `gorm:"type:text" json:"profilePicture"`          // Blob reference or empty
	CreatedAt      time.Time `json:"createdAt"`                                // Seed time
	UpdatedAt      time.Time `json:"updatedAt"`                                // Last profile change
}

// ProfileUpdate lists exactly the user fields the owner may change
type ProfileUpdate struct {
	Name           *string
	Address        *string
	ProfilePicture *string
	Bio            *string
	IsProfileSetup *bool
	Password       *string // Plain text, re-hashed before storage
}

// AdminProfileUpdate lists exactly the admin fields the admin may change
type AdminProfileUpdate struct {
	Name           *string
	ProfilePicture *string
	Password       *string // Plain text, re-hashed before storage
}
