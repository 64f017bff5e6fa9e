package api

import (
	"bottle_orders/internal/domain"     // Importing domain models
	"bottle_orders/internal/middleware" // Context keys
	"bottle_orders/internal/store"      // Identity store
	"bottle_orders/internal/utils"      // Utility functions
	"net/http"                          // HTTP status codes
	"time"                              // Token lifetime

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request and Response structs
type RegisterRequest struct {
	Title         string `json:"title" binding:"required"`         // Mr. / Ms. / ...
	Name          string `json:"name" binding:"required"`          // Display name
	EmailOrMobile string `json:"emailOrMobile" binding:"required"` // Unique login key
	Password      string `json:"password" binding:"required"`      // Plain text password
	Address       string `json:"address"`                          // Optional default address
}

// Request struct for login
type LoginRequest struct {
	EmailOrMobile string `json:"emailOrMobile" binding:"required"` // Login key
	Password      string `json:"password" binding:"required"`      // Plain text password
}

// Request struct for admin login
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"` // Admin username
	Password string `json:"password" binding:"required"` // Plain text password
}

// ProfileRequest carries the allow-listed user profile fields; anything else in the body is ignored
type ProfileRequest struct {
	Name           *string `json:"name"`           // Display name
	Address        *string `json:"address"`        // Default delivery address
	ProfilePicture *string `json:"profilePicture"` // Blob reference
	Bio            *string `json:"bio"`            // Free text
	IsProfileSetup *bool   `json:"isProfileSetup"` // Profile wizard completed
	Password       *string `json:"password"`       // New password
}

// AdminProfileRequest carries the allow-listed admin profile fields
type AdminProfileRequest struct {
	Name           *string `json:"name"`           // Display name
	ProfilePicture *string `json:"profilePicture"` // Blob reference
	Password       *string `json:"password"`       // New password
}

// TokenIssuer signs bearer tokens
type TokenIssuer struct {
	Secret string        // HMAC secret
	TTL    time.Duration // Token lifetime
}

func (t TokenIssuer) issue(subjectID string, isAdmin bool) (string, error) {
	return utils.GenerateJWT(subjectID, isAdmin, t.Secret, t.TTL)
}

// RegisterHandler creates a user and returns it with a token
func RegisterHandler(identity *store.IdentityStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All required fields must be provided"})
			return
		}
		user, err := identity.Register(c.Request.Context(), store.Registration{
			Title:         req.Title,
			Name:          req.Name,
			EmailOrMobile: req.EmailOrMobile,
			Password:      req.Password,
			Address:       req.Address,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := tokens.issue(user.ID, false)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "user": user, "token": token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(identity *store.IdentityStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email/mobile and password are required"})
			return
		}
		user, err := identity.Authenticate(c.Request.Context(), req.EmailOrMobile, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		// Generate JWT token
		token, err := tokens.issue(user.ID, false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
	}
}

// AdminLoginHandler authenticates the admin and returns a token carrying the admin flag
func AdminLoginHandler(identity *store.IdentityStore, tokens TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}
		admin, err := identity.AuthenticateAdmin(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		token, err := tokens.issue(admin.ID, true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin, "token": token})
	}
}

// GetProfileHandler returns the caller's user record
func GetProfileHandler(identity *store.IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := identity.GetUser(c.Request.Context(), c.GetString(middleware.UserIDKey))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// UpdateProfileHandler applies allow-listed fields to the caller's user record
func UpdateProfileHandler(identity *store.IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := identity.UpdateProfile(c.Request.Context(), c.GetString(middleware.UserIDKey), domain.ProfileUpdate{
			Name:           req.Name,
			Address:        req.Address,
			ProfilePicture: req.ProfilePicture,
			Bio:            req.Bio,
			IsProfileSetup: req.IsProfileSetup,
			Password:       req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
	}
}

// GetAdminProfileHandler returns the caller's admin record
func GetAdminProfileHandler(identity *store.IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := identity.GetAdmin(c.Request.Context(), c.GetString(middleware.UserIDKey))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
	}
}

// UpdateAdminProfileHandler applies allow-listed fields to the admin record
func UpdateAdminProfileHandler(identity *store.IdentityStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		admin, err := identity.UpdateAdminProfile(c.Request.Context(), c.GetString(middleware.UserIDKey), domain.AdminProfileUpdate{
			Name:           req.Name,
			ProfilePicture: req.ProfilePicture,
			Password:       req.Password,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
	}
}
