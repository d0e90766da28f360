package api

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewContentBlockHandler()
	router.POST("/admin/sections/:id/blocks", h.Create)
	router.PUT("/admin/blocks/:id", h.Update)
	return router
}

func TestBlockCreate_InvalidType(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `page_sections`").WithArgs(1, 1).
		WillReturnRows(sectionRows().AddRow(1, 1, "章节", 0, time.Now(), time.Now(), nil))

	w := doJSON(blockRouter(), "POST", "/admin/sections/1/blocks", `{"block_type":"video","content":{"url":"x"}}`)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockCreate_Success(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `page_sections`").WithArgs(1, 1).
		WillReturnRows(sectionRows().AddRow(1, 1, "章节", 0, time.Now(), time.Now(), nil))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `content_blocks`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	w := doJSON(blockRouter(), "POST", "/admin/sections/1/blocks", `{"block_type":"text","content":{"body":"欢迎报考"},"position":0}`)

	assert.Equal(t, 201, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockUpdate_InvalidTypeRejected(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "section_id", "block_type", "content", "position", "is_visible", "created_at", "updated_at", "deleted_at"}).
		AddRow(3, 1, "text", []byte(`{"body":"x"}`), 0, true, time.Now(), time.Now(), nil)
	mock.ExpectQuery("SELECT .* FROM `content_blocks`").WithArgs(3, 1).WillReturnRows(rows)

	w := doJSON(blockRouter(), "PUT", "/admin/blocks/3", `{"block_type":"carousel"}`)

	assert.Equal(t, 400, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
