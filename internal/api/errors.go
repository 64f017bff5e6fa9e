package api

import (
	"bottle_orders/internal/domain" // Importing domain models
	"errors"                        // Error matching
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const internalErrorMessage = "Internal server error"

// statusFor maps an error kind to its response code
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ValidationError, domain.ConflictError:
		return http.StatusBadRequest
	case domain.AuthenticationError:
		return http.StatusUnauthorized
	case domain.AuthorizationError:
		return http.StatusForbidden
	case domain.NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Store failures are logged and answered generically.
func respondError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Route
			"error": err.Error(),  // Error message
		}).Error("Unclassified error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	status := statusFor(de.Kind)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(),     // Route
			"kind":  de.Kind.String(), // Error kind
			"error": de.Error(),       // Message and cause
		}).Error("Request failed")
		c.JSON(status, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"error": de.Message})
}
