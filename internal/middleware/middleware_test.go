package middleware

import (
	"bottle_orders/internal/domain"
	"bottle_orders/internal/utils"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

type fakeAdmins map[string]error

func (f fakeAdmins) GetAdmin(_ context.Context, id string) (*domain.Admin, error) {
	if err, ok := f[id]; ok {
		return nil, err
	}
	return &domain.Admin{ID: id}, nil
}

func newTestRouter(admins AdminLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/", JWTAuthMiddleware(testSecret))
	authed.GET("/me", UserOnlyMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(UserIDKey))
	})
	authed.GET("/admin", AdminOnlyMiddleware(admins), func(c *gin.Context) {
		c.String(http.StatusOK, "admin "+c.GetString(UserIDKey))
	})
	return r
}

func doRequest(r http.Handler, path, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, subject string, isAdmin bool) string {
	token, err := utils.GenerateJWT(subject, isAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newTestRouter(fakeAdmins{})

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "Bearer not-a-jwt").Code)

	w := doRequest(r, "/me", bearer(t, "u1", false))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
}

func TestUserOnlyRejectsAdminTokens(t *testing.T) {
	r := newTestRouter(fakeAdmins{})
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/me", bearer(t, "admin1", true)).Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	r := newTestRouter(fakeAdmins{
		"gone":   domain.NewNotFoundError("Admin not found"),
		"broken": domain.NewPersistenceError("db down", errors.New("boom")),
	})

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", bearer(t, "u1", false)).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", bearer(t, "gone", true)).Code)
	assert.Equal(t, http.StatusInternalServerError, doRequest(r, "/admin", bearer(t, "broken", true)).Code)

	w := doRequest(r, "/admin", bearer(t, "admin1", true))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin admin1", w.Body.String())
}
