package api

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSectionHandler()
	router.POST("/admin/pages/:id/sections", h.Create)
	router.DELETE("/admin/sections/:id", h.Delete)
	return router
}

func sectionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "page_id", "title", "position", "created_at", "updated_at", "deleted_at"})
}

func TestSectionCreate_PageNotFound(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(42, 1).
		WillReturnRows(pageRows())

	w := doJSON(sectionRouter(), "POST", "/admin/pages/42/sections", `{"title":"招生信息"}`)
	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionCreate_Success(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `pages`").WithArgs(1, 1).
		WillReturnRows(pageRow(pageRows(), 1, "A", "a", "draft", nil, 0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `page_sections`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(sectionRouter(), "POST", "/admin/pages/1/sections", `{"title":"招生信息","position":2}`)
	assert.Equal(t, 201, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionDelete_CascadesBlocks(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	// 删除章节时内容块在同一事务内一并删除
	mock.ExpectQuery("SELECT .* FROM `page_sections`").WithArgs(7, 1).
		WillReturnRows(sectionRows().AddRow(7, 1, "旧章节", 0, time.Now(), time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `content_blocks` SET `deleted_at`").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE `page_sections` SET `deleted_at`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/admin/sections/7", nil)
	w := httptest.NewRecorder()
	sectionRouter().ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
