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

// CategoryController manages categories and content-category associations.
type CategoryController struct {
	db *gorm.DB
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

// Create inserts a new category.
func (cc *CategoryController) Create(ctx *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required,min=1"`
		Description *string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42250, "invalid category payload")
		return
	}

	category := models.Category{
		Name: utils.SanitizePlain(strings.TrimSpace(req.Name)),
	}
	if req.Description != nil {
		desc := utils.SanitizePlain(*req.Description)
		category.Description = &desc
	}

	if err := cc.db.Create(&category).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:categories:")
	utils.Success(ctx, category)
}

// List returns all categories.
func (cc *CategoryController) List(ctx *gin.Context) {
	if b, hit := utils.CacheGetBytes("cache:categories:list"); hit {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var categories []models.Category
	if err := cc.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, err.Error())
		return
	}

	utils.CacheSetJSON("cache:categories:list", cacheEnvelope(categories), time.Hour)
	utils.Success(ctx, categories)
}

// Get returns one category by id.
func (cc *CategoryController) Get(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40405, "category not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40042, err.Error())
		return
	}

	utils.Success(ctx, category)
}

// Update replaces the name and description of a category.
func (cc *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Name        string  `json:"name" binding:"required,min=1"`
		Description *string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42251, "invalid category payload")
		return
	}

	var category models.Category
	if err := cc.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40406, "category not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40043, err.Error())
		return
	}

	category.Name = utils.SanitizePlain(strings.TrimSpace(req.Name))
	if req.Description != nil {
		desc := utils.SanitizePlain(*req.Description)
		category.Description = &desc
	} else {
		category.Description = nil
	}

	if err := cc.db.Save(&category).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:categories:")
	utils.Success(ctx, category)
}

// Delete removes a category. Join rows referencing it become dangling and are
// skipped by the content transformer.
func (cc *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := cc.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40407, "category not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40045, err.Error())
		return
	}

	if err := cc.db.Delete(&category).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40046, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:categories:")
	utils.Success(ctx, category)
}

// AddContentCategories bulk-associates categories with a content item and
// returns the created join rows.
func (cc *CategoryController) AddContentCategories(ctx *gin.Context) {
	var req struct {
		ContentID   uuid.UUID   `json:"content_id" binding:"required"`
		CategoryIDs []uuid.UUID `json:"category_ids" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42252, "invalid association payload")
		return
	}

	// A missing target content row is an upstream constraint failure.
	var content models.Content
	if err := cc.db.First(&content, "id = ?", req.ContentID).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40047, "content does not exist")
		return
	}

	rows := make([]models.ContentCategory, 0, len(req.CategoryIDs))
	for _, categoryID := range req.CategoryIDs {
		rows = append(rows, models.ContentCategory{
			ContentID:  req.ContentID,
			CategoryID: categoryID,
		})
	}

	if err := cc.db.Create(&rows).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40048, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:content:detail:" + req.ContentID.String())
	utils.Success(ctx, rows)
}
