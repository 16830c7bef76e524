package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/models"
)

func newCategoryRouter(t *testing.T, db *gorm.DB, userID uuid.UUID) *gin.Engine {
	t.Helper()
	loadTestConfig(t)
	cc := NewCategoryController(db)
	r := gin.New()
	g := r.Group("/categories", authAs(userID))
	g.POST("", cc.Create)
	g.GET("", cc.List)
	g.GET("/:id", cc.Get)
	g.PUT("/:id", cc.Update)
	g.DELETE("/:id", cc.Delete)
	g.POST("/content-categories", cc.AddContentCategories)
	return r
}

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin@example.com")
	r := newCategoryRouter(t, db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/categories", gin.H{
		"name":        "news",
		"description": "current events",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Category
	decodeData(t, w, &created)
	assert.Equal(t, "news", created.Name)
	require.NotNil(t, created.Description)
	assert.Equal(t, "current events", *created.Description)

	w = performJSON(t, r, http.MethodGet, "/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodPut, "/categories/"+created.ID.String(), gin.H{
		"name": "world news",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Category
	decodeData(t, w, &updated)
	assert.Equal(t, "world news", updated.Name)

	w = performJSON(t, r, http.MethodDelete, "/categories/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSON(t, r, http.MethodGet, "/categories/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryCreateValidation(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin@example.com")
	r := newCategoryRouter(t, db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/categories", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAddContentCategories(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin@example.com")
	content := seedContentRow(t, db, user.ID, "post")
	r := newCategoryRouter(t, db, user.ID)

	catA := models.Category{Name: "news"}
	catB := models.Category{Name: "art"}
	require.NoError(t, db.Create(&catA).Error)
	require.NoError(t, db.Create(&catB).Error)

	w := performJSON(t, r, http.MethodPost, "/categories/content-categories", gin.H{
		"content_id":   content.ID,
		"category_ids": []uuid.UUID{catA.ID, catB.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var rows []models.ContentCategory
	decodeData(t, w, &rows)
	assert.Len(t, rows, 2)

	var count int64
	require.NoError(t, db.Model(&models.ContentCategory{}).
		Where("content_id = ?", content.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAddContentCategoriesMissingContent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "admin@example.com")
	r := newCategoryRouter(t, db, user.ID)

	category := models.Category{Name: "news"}
	require.NoError(t, db.Create(&category).Error)

	w := performJSON(t, r, http.MethodPost, "/categories/content-categories", gin.H{
		"content_id":   uuid.New(),
		"category_ids": []uuid.UUID{category.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "content does not exist", decodeEnvelope(t, w).Message)
}
