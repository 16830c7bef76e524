package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/utils"
)

// TagController manages tags and content-tag associations.
type TagController struct {
	db *gorm.DB
}

// NewTagController creates a TagController.
func NewTagController(db *gorm.DB) *TagController {
	return &TagController{db: db}
}

// Create inserts a new tag.
func (tc *TagController) Create(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42260, "invalid tag payload")
		return
	}

	tag := models.Tag{Name: utils.SanitizePlain(strings.TrimSpace(req.Name))}
	if err := tc.db.Create(&tag).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:tags:")
	utils.Success(ctx, tag)
}

// List returns all tags.
func (tc *TagController) List(ctx *gin.Context) {
	if b, hit := utils.CacheGetBytes("cache:tags:list"); hit {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var tags []models.Tag
	if err := tc.db.Order("created_at ASC").Find(&tags).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40051, err.Error())
		return
	}

	utils.CacheSetJSON("cache:tags:list", cacheEnvelope(tags), time.Hour)
	utils.Success(ctx, tags)
}

// Get returns one tag by id.
func (tc *TagController) Get(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var tag models.Tag
	if err := tc.db.First(&tag, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40408, "tag not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40052, err.Error())
		return
	}

	utils.Success(ctx, tag)
}

// Delete removes a tag.
func (tc *TagController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var tag models.Tag
	if err := tc.db.First(&tag, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40409, "tag not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40053, err.Error())
		return
	}

	if err := tc.db.Delete(&tag).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:tags:")
	utils.Success(ctx, tag)
}

// AddContentTags bulk-associates tags with a content item and returns the
// created join rows.
func (tc *TagController) AddContentTags(ctx *gin.Context) {
	var req struct {
		ContentID uuid.UUID   `json:"content_id" binding:"required"`
		TagIDs    []uuid.UUID `json:"tag_ids" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42261, "invalid association payload")
		return
	}

	var content models.Content
	if err := tc.db.First(&content, "id = ?", req.ContentID).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40055, "content does not exist")
		return
	}

	rows := make([]models.ContentTag, 0, len(req.TagIDs))
	for _, tagID := range req.TagIDs {
		rows = append(rows, models.ContentTag{
			ContentID: req.ContentID,
			TagID:     tagID,
		})
	}

	if err := tc.db.Create(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40056, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:content:detail:" + req.ContentID.String())
	utils.Success(ctx, rows)
}
