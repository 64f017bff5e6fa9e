package store

import (
	"bottle_orders/internal/domain"
	"bottle_orders/internal/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityStore(t *testing.T) *IdentityStore {
	s := NewIdentityStore(openTestDB(t))
	s.now = newStepClock().Now
	return s
}

func ravi() Registration {
	return Registration{
		Title:         "Mr.",
		Name:          "Ravi Kumar",
		EmailOrMobile: "ravi@example.com",
		Password:      "demo123",
		Address:       "12 MG Road",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()

	user, err := s.Register(ctx, ravi())
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsProfileSetup)
	assert.NotEqual(t, "demo123", user.PasswordDigest)

	got, err := s.Authenticate(ctx, "ravi@example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestRegisterDuplicateKey(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()

	_, err := s.Register(ctx, ravi())
	require.NoError(t, err)

	again := ravi()
	again.Name = "Someone Else"
	_, err = s.Register(ctx, again)
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.ConflictError))
	assert.Contains(t, err.Error(), duplicateRegistrant)

	var count int64
	require.NoError(t, s.db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()

	short := ravi()
	short.Password = "12345"
	_, err := s.Register(ctx, short)
	assert.True(t, domain.IsKind(err, domain.ValidationError))

	missing := ravi()
	missing.Title = ""
	_, err = s.Register(ctx, missing)
	assert.True(t, domain.IsKind(err, domain.ValidationError))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()
	_, err := s.Register(ctx, ravi())
	require.NoError(t, err)

	_, unknown := s.Authenticate(ctx, "nobody@example.com", "demo123")
	_, wrong := s.Authenticate(ctx, "ravi@example.com", "wrong-pass")
	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.True(t, domain.IsKind(unknown, domain.AuthenticationError))
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestAdminAuthentication(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()
	digest, err := utils.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, s.db.Create(&domain.Admin{ID: "admin1", Username: "admin", PasswordDigest: digest, Name: "Admin"}).Error)

	admin, err := s.AuthenticateAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin1", admin.ID)

	_, unknown := s.AuthenticateAdmin(ctx, "root", "admin123")
	_, wrong := s.AuthenticateAdmin(ctx, "admin", "nope")
	assert.True(t, domain.IsKind(unknown, domain.AuthenticationError))
	assert.Equal(t, unknown.Error(), wrong.Error())

	// Admins are not users
	_, err = s.Authenticate(ctx, "admin", "admin123")
	assert.True(t, domain.IsKind(err, domain.AuthenticationError))

	name := "Head Office"
	updated, err := s.UpdateAdminProfile(ctx, "admin1", domain.AdminProfileUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Head Office", updated.Name)
	assert.Equal(t, "admin", updated.Username)
}

func TestUpdateProfileAllowList(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()
	user, err := s.Register(ctx, ravi())
	require.NoError(t, err)

	name, bio, setup := "Ravi K", "Loves water", true
	got, err := s.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Name: &name, Bio: &bio, IsProfileSetup: &setup})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", got.Name)
	assert.Equal(t, "Loves water", got.Bio)
	assert.True(t, got.IsProfileSetup)
	assert.Equal(t, "ravi@example.com", got.EmailOrMobile)
	assert.Equal(t, "Mr.", got.Title)
	assert.Equal(t, user.ID, got.ID)
	assert.True(t, got.UpdatedAt.After(user.UpdatedAt))

	empty := " "
	_, err = s.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Name: &empty})
	assert.True(t, domain.IsKind(err, domain.ValidationError))

	_, err = s.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Bio: &bio})
	assert.True(t, domain.IsKind(err, domain.NotFoundError))
}

func TestUpdateProfilePasswordIsRehashed(t *testing.T) {
	s := newIdentityStore(t)
	ctx := context.Background()
	user, err := s.Register(ctx, ravi())
	require.NoError(t, err)

	short := "123"
	_, err = s.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Password: &short})
	assert.True(t, domain.IsKind(err, domain.ValidationError))

	fresh := "fresh-secret"
	got, err := s.UpdateProfile(ctx, user.ID, domain.ProfileUpdate{Password: &fresh})
	require.NoError(t, err)
	assert.NotEqual(t, fresh, got.PasswordDigest)
	assert.NotEqual(t, user.PasswordDigest, got.PasswordDigest)

	_, err = s.Authenticate(ctx, "ravi@example.com", "demo123")
	assert.True(t, domain.IsKind(err, domain.AuthenticationError))
	_, err = s.Authenticate(ctx, "ravi@example.com", fresh)
	assert.NoError(t, err)
}
