package controllers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/config"
	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/store"
	"github.com/mbelova/canvashare/utils"
)

// ContentController manages content items: CRUD, the filter pipeline and
// image uploads.
type ContentController struct {
	db     *gorm.DB
	store  store.ContentStore
	filter *store.ContentFilter
}

// NewContentController creates a ContentController wired to the content store.
func NewContentController(db *gorm.DB) *ContentController {
	cs := store.NewContentStore(db)
	return &ContentController{
		db:     db,
		store:  cs,
		filter: store.NewContentFilter(cs),
	}
}

// Create inserts a new content item owned by the caller. Categories and tags
// are attached later through the association endpoints, never at creation.
func (c *ContentController) Create(ctx *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required,min=1"`
		Description *string `json:"description"`
		ContentText string  `json:"content_text" binding:"required"`
		ImageURL    *string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42220, "invalid content payload")
		return
	}

	title := utils.SanitizePlain(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42221, "title cannot be empty")
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	content := models.Content{
		UserID:      userID,
		Title:       title,
		ContentText: utils.Sanitize(req.ContentText),
		ImageURL:    req.ImageURL,
	}
	if req.Description != nil {
		desc := utils.SanitizePlain(*req.Description)
		content.Description = &desc
	}

	if err := c.db.Create(&content).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, err.Error())
		return
	}

	utils.Success(ctx, store.BuildContentView(content))
}

// List returns every content item with flattened categories and tags.
func (c *ContentController) List(ctx *gin.Context) {
	contents, err := c.store.QueryContents(ctx.Request.Context(), store.ContentQuery{
		OrderBy:   store.OrderByCreatedAt,
		OrderDesc: true,
	})
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, err.Error())
		return
	}
	utils.Success(ctx, store.BuildContentViews(contents))
}

// Get returns one content item by id.
func (c *ContentController) Get(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	cacheKey := "cache:content:detail:" + id.String()
	if b, hit := utils.CacheGetBytes(cacheKey); hit {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	content, err := c.store.GetContent(ctx.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40402, "content not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40022, err.Error())
		return
	}

	view := store.BuildContentView(*content)
	utils.CacheSetJSON(cacheKey, cacheEnvelope(view), time.Hour)
	utils.Success(ctx, view)
}

// Update modifies a content item; only the owner may do so. Unset fields are
// left untouched.
func (c *ContentController) Update(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		ContentText *string `json:"content_text"`
		ImageURL    *string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42222, "invalid content payload")
		return
	}

	var content models.Content
	if err := c.db.First(&content, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40403, "content not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40023, err.Error())
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}
	if content.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40301, "not authorized to update this content")
		return
	}

	if req.Title != nil {
		title := utils.SanitizePlain(strings.TrimSpace(*req.Title))
		if title == "" {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42223, "title cannot be empty")
			return
		}
		content.Title = title
	}
	if req.Description != nil {
		desc := utils.SanitizePlain(*req.Description)
		content.Description = &desc
	}
	if req.ContentText != nil {
		content.ContentText = utils.Sanitize(*req.ContentText)
	}
	if req.ImageURL != nil {
		content.ImageURL = req.ImageURL
	}

	if err := c.db.Save(&content).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:content:detail:" + id.String())

	utils.Success(ctx, store.BuildContentView(content))
}

// Delete removes a content item; only the owner may do so.
func (c *ContentController) Delete(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var content models.Content
	if err := c.db.First(&content, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40404, "content not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40025, err.Error())
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}
	if content.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40302, "not authorized to delete this content")
		return
	}

	if err := c.db.Delete(&content).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40026, err.Error())
		return
	}

	utils.InvalidateByPrefix("cache:content:detail:" + id.String())

	utils.Success(ctx, gin.H{"message": "content deleted"})
}

// Filter runs the filter/sort/paginate pipeline. Results are never cached:
// reaction counts must be recomputed on every request.
func (c *ContentController) Filter(ctx *gin.Context) {
	spec, ok := parseFilterSpec(ctx)
	if !ok {
		return
	}

	result, err := c.filter.GetFilteredContents(ctx.Request.Context(), spec)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40027, err.Error())
		return
	}

	utils.Success(ctx, result)
}

// parseFilterSpec validates filter query parameters, responding 422 on any
// malformed or out-of-range value.
func parseFilterSpec(ctx *gin.Context) (store.FilterSpec, bool) {
	spec := store.FilterSpec{
		Search: strings.TrimSpace(ctx.Query("search")),
		Page:   1,
		Size:   store.DefaultPageSize,
	}

	if raw := strings.TrimSpace(ctx.Query("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42230, "page must be a positive integer")
			return spec, false
		}
		spec.Page = n
	}
	if raw := strings.TrimSpace(ctx.Query("size")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > store.MaxPageSize {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42231, "size must be between 1 and 100")
			return spec, false
		}
		spec.Size = n
	}

	if raw := strings.TrimSpace(ctx.Query("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42232, "invalid category_id")
			return spec, false
		}
		spec.CategoryID = &id
	}

	// tag_ids accepts both repeated parameters and comma-separated values.
	for _, value := range ctx.QueryArray("tag_ids") {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				utils.Error(ctx, http.StatusUnprocessableEntity, 42233, "invalid tag_ids")
				return spec, false
			}
			spec.TagIDs = append(spec.TagIDs, id)
		}
	}

	if raw := strings.TrimSpace(ctx.Query("start_date")); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42234, "invalid start_date")
			return spec, false
		}
		spec.StartDate = &t
	}
	if raw := strings.TrimSpace(ctx.Query("end_date")); raw != "" {
		t, ok := parseTimestamp(raw)
		if !ok {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42235, "invalid end_date")
			return spec, false
		}
		spec.EndDate = &t
	}

	if raw := strings.TrimSpace(ctx.Query("sort_by")); raw != "" {
		switch raw {
		case store.SortByDate, store.SortByTitle, store.SortByReactions:
			spec.SortBy = raw
		default:
			utils.Error(ctx, http.StatusUnprocessableEntity, 42236, "sort_by must be one of date, title, reactions")
			return spec, false
		}
	}
	if raw := strings.ToLower(strings.TrimSpace(ctx.Query("sort_order"))); raw != "" {
		if raw != store.SortOrderAsc && raw != store.SortOrderDesc {
			utils.Error(ctx, http.StatusUnprocessableEntity, 42237, "sort_order must be asc or desc")
			return spec, false
		}
		spec.SortOrder = raw
	}

	return spec, true
}

// UploadImage stores a multipart image under {user_id}/{uuid}.{ext} and
// returns its public URL. The whole file passes through a size-capped reader.
func (c *ContentController) UploadImage(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40113, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42240, "no file uploaded")
		return
	}
	defer file.Close()

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxSizeMB) * 1024 * 1024
	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42241, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if ext == "" {
		ext = "bin"
	}
	fileName := uuid.New().String() + "." + ext
	objectKey := userID.String() + "/" + fileName

	baseDir := filepath.Join(cfg.UploadDir, userID.String())
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, err.Error())
		return
	}
	dstPath := filepath.Join(baseDir, fileName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, err.Error())
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40032, err.Error())
		return
	}
	if written > maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusUnprocessableEntity, 42241, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	publicURL := cfg.PublicBaseURL + "/static/uploads/" + objectKey

	if cfg.UploadsExpireEnabled && cfg.UploadsExpireMinutes > 0 {
		expireAt := time.Now().Add(time.Duration(cfg.UploadsExpireMinutes) * time.Minute)
		absPath, _ := filepath.Abs(dstPath)
		record := models.UploadedFile{FilePath: absPath, URL: publicURL, ExpireAt: expireAt}
		if err := c.db.Create(&record).Error; err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("failed to record uploaded file: %v", err)
		}
	}

	utils.Success(ctx, gin.H{
		"file_name":  fileName,
		"file_path":  objectKey,
		"public_url": publicURL,
	})
}
