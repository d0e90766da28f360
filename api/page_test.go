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

func pageRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPageHandler()
	router.POST("/admin/pages", h.Create)
	router.PUT("/admin/pages/:id", h.Update)
	router.PATCH("/admin/pages/:id/move", h.Move)
	router.DELETE("/admin/pages/:id", h.Delete)
	router.GET("/pages/slug/:slug", h.PublicGetBySlug)
	return router
}

func pageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug", "status", "menu_id", "parent_id", "position", "seo_meta", "created_at", "updated_at", "deleted_at"})
}

func pageRow(rows *sqlmock.Rows, id uint, title, slugVal, status string, parentID interface{}, position int) *sqlmock.Rows {
	return rows.AddRow(id, title, slugVal, status, nil, parentID, position, nil, time.Now(), time.Now(), nil)
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPageCreate_DefaultsToDraft(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs("admissions", 1).
		WillReturnRows(pageRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `pages`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(pageRouter(), "POST", "/admin/pages", `{"title":"Admissions"}`)

	assert.Equal(t, 201, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "admissions", data["slug"])
	assert.Equal(t, "draft", data["status"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageCreate_InvalidStatus(t *testing.T) {
	_, cleanup := setupMockDB(t)
	defer cleanup()

	w := doJSON(pageRouter(), "POST", "/admin/pages", `{"title":"X","status":"live"}`)
	assert.Equal(t, 400, w.Code)
}

func TestPageUpdate_TitleChangeRederivesSlug(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 只改标题时 slug 随新标题重新生成
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "Old Title", "old-title", "draft", nil, 0))
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs("new-title", 1, 1).
		WillReturnRows(pageRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `pages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "New Title", "new-title", "draft", nil, 0))

	w := doJSON(pageRouter(), "PUT", "/admin/pages/1", `{"title":"New Title"}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "new-title", data["slug"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageUpdate_BlankSlugFallsBackToNewTitle(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 显式 slug 去掉空白后为空，且标题同时更新：按新标题生成，而不是旧标题
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "Old Title", "old-title", "draft", nil, 0))
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs("new-title", 1, 1).
		WillReturnRows(pageRows())
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `pages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "New Title", "new-title", "draft", nil, 0))

	w := doJSON(pageRouter(), "PUT", "/admin/pages/1", `{"title":"New Title","slug":" "}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "new-title", data["slug"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageMove_SelfParentRejected(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "A", "a", "draft", nil, 0))

	w := doJSON(pageRouter(), "PATCH", "/admin/pages/1/move", `{"parent_id":1,"position":0}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "自身")
}

func TestPageMove_CycleRejected(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 页面 2 是页面 1 的子页面，把 1 移到 2 下会形成环
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "A", "a", "draft", nil, 0))
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(2, 1).
		WillReturnRows(pageRow(pageRows(), 2, "B", "b", "draft", uintPtr(1), 0))
	rows := pageRows()
	pageRow(rows, 1, "A", "a", "draft", nil, 0)
	pageRow(rows, 2, "B", "b", "draft", uintPtr(1), 0)
	mock.ExpectQuery("SELECT .* FROM `pages`").WillReturnRows(rows)

	w := doJSON(pageRouter(), "PATCH", "/admin/pages/1/move", `{"parent_id":2,"position":0}`)

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "子页面")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageMove_DetachToRoot(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// parent_id 为 null 表示移回根层
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(2, 1).
		WillReturnRows(pageRow(pageRows(), 2, "B", "b", "draft", uintPtr(1), 0))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `pages` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(2, 1).
		WillReturnRows(pageRow(pageRows(), 2, "B", "b", "draft", nil, 3))

	w := doJSON(pageRouter(), "PATCH", "/admin/pages/2/move", `{"parent_id":null,"position":3}`)

	assert.Equal(t, 200, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Nil(t, data["parent_id"])
	assert.Equal(t, float64(3), data["position"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPageDelete_WithChildrenRejected(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "A", "a", "draft", nil, 0))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `pages`").WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(2))

	w := doJSON(pageRouter(), "DELETE", "/admin/pages/1", "")

	assert.Equal(t, 400, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["message"], "子页面")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPagePublicGetBySlug_DraftHidden(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 草稿页面对前台不可见
	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs("secret", "published", 1).
		WillReturnRows(pageRows())

	req := httptest.NewRequest("GET", "/pages/slug/secret", nil)
	w := httptest.NewRecorder()
	pageRouter().ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
