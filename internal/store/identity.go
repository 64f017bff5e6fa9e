package store

import (
	"bottle_orders/internal/domain" // Importing domain models
	"bottle_orders/internal/utils"  // Password hashing
	"context"                       // Request context
	"errors"                        // Error matching
	"strings"                       // Input trimming
	"time"                          // Clock

	"github.com/google/uuid"     // Opaque ids
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

const (
	minPasswordLength    = 6
	invalidCredentials   = "Invalid credentials. Please check your details."
	invalidAdminLogin    = "Invalid admin credentials"
	duplicateRegistrant  = "This Mobile No / Email ID is already registered."
	userNotFoundMessage  = "User not found"
	adminNotFoundMessage = "Admin not found"
)

// Compared against when the login key is unknown so both failure paths cost one bcrypt check
var dummyDigest, _ = utils.HashPassword("timing-equalizer")

// Registration carries the fields of a new user
type Registration struct {
	Title         string
	Name          string
	EmailOrMobile string
	Password      string
	Address       string
}

// IdentityStore holds user and admin records
type IdentityStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewIdentityStore creates an identity store on db
func NewIdentityStore(db *gorm.DB) *IdentityStore {
	return &IdentityStore{db: db, now: time.Now}
}

// Register creates a user with isProfileSetup=false
func (s *IdentityStore) Register(ctx context.Context, in Registration) (*domain.User, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Name = strings.TrimSpace(in.Name)
	in.EmailOrMobile = strings.TrimSpace(in.EmailOrMobile)
	if in.Title == "" || in.Name == "" || in.EmailOrMobile == "" || in.Password == "" {
		return nil, domain.NewValidationError("All required fields must be provided")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.NewValidationError("Password must be at least 6 characters")
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email_or_mobile = ?", in.EmailOrMobile).Count(&count).Error; err != nil {
		return nil, domain.NewPersistenceError("Registration failed", err)
	}
	if count > 0 {
		return nil, domain.NewConflictError(duplicateRegistrant)
	}
	digest, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.NewPersistenceError("Registration failed", err)
	}
	now := s.now()
	user := domain.User{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Name:           in.Name,
		EmailOrMobile:  in.EmailOrMobile,
		PasswordDigest: digest,
		Address:        in.Address,
		IsProfileSetup: false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent registration of the same key
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.NewConflictError(duplicateRegistrant)
		}
		return nil, domain.NewPersistenceError("Registration failed", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":   user.ID,                  // User ID
		"type":      "register",               // Action
		"timestamp": now.Format(time.RFC3339), // Current timestamp
	}).Info("User registered")
	return &user, nil
}

// Authenticate checks a user's credentials. Unknown key and wrong password fail identically.
func (s *IdentityStore) Authenticate(ctx context.Context, emailOrMobile, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email_or_mobile = ?", strings.TrimSpace(emailOrMobile)).First(&user).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewPersistenceError("Login failed", err)
		}
		utils.CheckPassword(password, dummyDigest)
		return nil, domain.NewAuthenticationError(invalidCredentials)
	}
	if !utils.CheckPassword(password, user.PasswordDigest) {
		return nil, domain.NewAuthenticationError(invalidCredentials)
	}
	return &user, nil
}

// AuthenticateAdmin checks the admin's credentials with the same contract as Authenticate
func (s *IdentityStore) AuthenticateAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	var admin domain.Admin
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&admin).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewPersistenceError("Admin login failed", err)
		}
		utils.CheckPassword(password, dummyDigest)
		return nil, domain.NewAuthenticationError(invalidAdminLogin)
	}
	if !utils.CheckPassword(password, admin.PasswordDigest) {
		return nil, domain.NewAuthenticationError(invalidAdminLogin)
	}
	return &admin, nil
}

// GetUser looks a user up by id
func (s *IdentityStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, wrapDBError(err, userNotFoundMessage, "Failed to fetch user")
	}
	return &user, nil
}

// GetAdmin looks an admin up by id
func (s *IdentityStore) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	var admin domain.Admin
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, wrapDBError(err, adminNotFoundMessage, "Failed to fetch admin")
	}
	return &admin, nil
}

// UpdateProfile applies the allow-listed fields of upd to the user's own record
func (s *IdentityStore) UpdateProfile(ctx context.Context, userID string, upd domain.ProfileUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, domain.NewValidationError("Name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.Address != nil {
		fields["address"] = *upd.Address
	}
	if upd.ProfilePicture != nil {
		fields["profile_picture"] = *upd.ProfilePicture
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.IsProfileSetup != nil {
		fields["is_profile_setup"] = *upd.IsProfileSetup
	}
	if upd.Password != nil {
		digest, err := rehash(*upd.Password)
		if err != nil {
			return nil, err
		}
		fields["password_digest"] = digest
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).Updates(fields)
		if res.Error != nil {
			return nil, domain.NewPersistenceError("Profile update failed", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.NewNotFoundError(userNotFoundMessage)
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // User ID
			"fields":  len(fields), // Number of columns written
		}).Info("Profile updated")
	}
	return s.GetUser(ctx, userID)
}

// UpdateAdminProfile applies the allow-listed fields of upd to the admin record
func (s *IdentityStore) UpdateAdminProfile(ctx context.Context, adminID string, upd domain.AdminProfileUpdate) (*domain.Admin, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = strings.TrimSpace(*upd.Name)
	}
	if upd.ProfilePicture != nil {
		fields["profile_picture"] = *upd.ProfilePicture
	}
	if upd.Password != nil {
		digest, err := rehash(*upd.Password)
		if err != nil {
			return nil, err
		}
		fields["password_digest"] = digest
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		res := s.db.WithContext(ctx).Model(&domain.Admin{}).Where("id = ?", adminID).Updates(fields)
		if res.Error != nil {
			return nil, domain.NewPersistenceError("Admin profile update failed", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.NewNotFoundError(adminNotFoundMessage)
		}
		logrus.WithField("admin_id", adminID).Info("Admin profile updated")
	}
	return s.GetAdmin(ctx, adminID)
}

func rehash(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", domain.NewValidationError("Password must be at least 6 characters")
	}
	digest, err := utils.HashPassword(password)
	if err != nil {
		return "", domain.NewPersistenceError("Failed to hash password", err)
	}
	return digest, nil
}
