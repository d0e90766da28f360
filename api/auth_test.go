package api

import (
	"encoding/json"
	"testing"
	"time"

	"campus/config"
	"campus/middleware"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewAuthHandler()
	router.POST("/admin/login", h.Login)
	return router
}

func setupAuthConfig() {
	config.GlobalConfig = &config.Config{}
	config.GlobalConfig.JWT.Secret = "test-secret"
	config.GlobalConfig.JWT.ExpireTime = time.Hour
	middleware.InitJWT(config.GlobalConfig)
}

func authUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password", "email", "is_admin", "status", "created_at", "updated_at", "deleted_at"})
}

func TestLogin_Success(t *testing.T) {
	setupAuthConfig()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs("admin", 1).
		WillReturnRows(authUserRows().AddRow(1, "admin", string(hashed), "admin@example.com", true, "active", time.Now(), time.Now(), nil))

	w := doJSON(authRouter(), "POST", "/admin/login", `{"username":"admin","password":"admin123"}`)

	require.Equal(t, 200, w.Code, w.Body.String())
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["success"].(bool))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["token"])
	// 密码不回传
	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	setupAuthConfig()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs("admin", 1).
		WillReturnRows(authUserRows().AddRow(1, "admin", string(hashed), "", true, "active", time.Now(), time.Now(), nil))

	w := doJSON(authRouter(), "POST", "/admin/login", `{"username":"admin","password":"wrong"}`)

	assert.Equal(t, 401, w.Code)
}

func TestLogin_UnknownUser(t *testing.T) {
	setupAuthConfig()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs("ghost", 1).
		WillReturnRows(authUserRows())

	w := doJSON(authRouter(), "POST", "/admin/login", `{"username":"ghost","password":"x"}`)

	assert.Equal(t, 401, w.Code)
}

func TestLogin_LockedAccount(t *testing.T) {
	setupAuthConfig()
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT .* FROM `users`").WithArgs("locked", 1).
		WillReturnRows(authUserRows().AddRow(2, "locked", string(hashed), "", false, "locked", time.Now(), time.Now(), nil))

	w := doJSON(authRouter(), "POST", "/admin/login", `{"username":"locked","password":"admin123"}`)

	assert.Equal(t, 403, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "锁定")
}
