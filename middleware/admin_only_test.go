package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupAdminMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

func userRows(isAdmin bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "is_admin", "status", "created_at", "updated_at", "deleted_at"}).
		AddRow(1, "admin", "x", "", isAdmin, "active", time.Now(), time.Now(), nil)
}

func adminTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", uint(1))
	})
	router.Use(RequireAdmin())
	router.GET("/admin-only", func(c *gin.Context) {
		c.String(200, "ok")
	})
	return router
}

func TestRequireAdmin_Admin(t *testing.T) {
	mock, cleanup := setupAdminMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs(1, 1).
		WillReturnRows(userRows(true))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	adminTestRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAdmin_NotAdmin(t *testing.T) {
	mock, cleanup := setupAdminMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs(1, 1).
		WillReturnRows(userRows(false))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	adminTestRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "权限不足")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireAdmin_NoLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequireAdmin())
	router.GET("/admin-only", func(c *gin.Context) {
		c.String(200, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
