package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewMenuHandler()
	router.GET("/admin/menus", h.List)
	router.POST("/admin/menus", h.Create)
	router.PUT("/admin/menus/:id", h.Update)
	router.DELETE("/admin/menus/:id", h.Delete)
	return router
}

func menuRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug", "position", "is_active", "created_at", "updated_at", "deleted_at"})
}

func TestMenuCreate_DerivesSlug(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// slug 未提供，由名称生成并做唯一性检查
	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs("about-us", 1).
		WillReturnRows(menuRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `menus`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	body := `{"name":"About Us","position":3}`
	req := httptest.NewRequest("POST", "/admin/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp["success"].(bool))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "about-us", data["slug"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuCreate_DuplicateSlugConflict(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 已存在 slug 为 about 的菜单，再次创建返回 409，不产生 INSERT
	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs("about", 1).
		WillReturnRows(menuRows().AddRow(1, "About", "about", 0, true, time.Now(), time.Now(), nil))

	body := `{"name":"About"}`
	req := httptest.NewRequest("POST", "/admin/menus", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 409, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["success"].(bool))
	assert.Contains(t, resp["message"], "slug")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuCreate_MissingName(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	req := httptest.NewRequest("POST", "/admin/menus", bytes.NewBufferString(`{"position":1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestMenuList_Ordered(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`.*ORDER BY position ASC, id ASC").
		WillReturnRows(menuRows().
			AddRow(2, "首页", "home", 0, true, time.Now(), time.Now(), nil).
			AddRow(1, "通知公告", "notices", 1, true, time.Now(), time.Now(), nil))

	req := httptest.NewRequest("GET", "/admin/menus", nil)
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, "home", first["slug"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuUpdate_NotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(99, 1).
		WillReturnRows(menuRows())

	req := httptest.NewRequest("PUT", "/admin/menus/99", bytes.NewBufferString(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
}

func TestMenuUpdate_BlankSlugFallsBackToNewName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 显式 slug 去掉空白后为空，且名称同时更新：按新名称生成
	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(1, 1).
		WillReturnRows(menuRows().AddRow(1, "旧名称", "old-name", 0, true, time.Now(), time.Now(), nil))
	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs("new-name", 1, 1).
		WillReturnRows(menuRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `menus` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(1, 1).
		WillReturnRows(menuRows().AddRow(1, "New Name", "new-name", 0, true, time.Now(), time.Now(), nil))

	req := httptest.NewRequest("PUT", "/admin/menus/1", bytes.NewBufferString(`{"name":"New Name","slug":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "new-name", data["slug"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuDelete_Success(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `menus`").WithArgs(3, 1).
		WillReturnRows(menuRows().AddRow(3, "旧菜单", "old", 5, false, time.Now(), time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `menus` SET `deleted_at`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/admin/menus/3", nil)
	w := httptest.NewRecorder()
	menuRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
