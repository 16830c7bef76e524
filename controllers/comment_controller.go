package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/utils"
)

// CommentController manages comments on content items.
type CommentController struct {
	db *gorm.DB
}

// NewCommentController creates a CommentController.
func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{db: db}
}

// Create adds a comment to a content item. Text is bounded to 1..1000
// characters after sanitation.
func (cc *CommentController) Create(ctx *gin.Context) {
	var req struct {
		ContentID   uuid.UUID `json:"content_id" binding:"required"`
		CommentText string    `json:"comment_text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42270, "invalid comment payload")
		return
	}

	text := utils.Sanitize(req.CommentText)
	if !models.ValidCommentText(text) {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42271, "comment_text must be 1 to 1000 characters")
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40114, "unauthorized")
		return
	}

	// A comment on a missing content item is an upstream constraint failure.
	var content models.Content
	if err := cc.db.First(&content, "id = ?", req.ContentID).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "content does not exist")
		return
	}

	comment := models.Comment{
		ContentID:   req.ContentID,
		UserID:      userID,
		CommentText: text,
	}
	if err := cc.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40061, err.Error())
		return
	}

	utils.Success(ctx, comment)
}

// ListByContent returns all comments for one content item.
func (cc *CommentController) ListByContent(ctx *gin.Context) {
	contentID, ok := parseUUIDParam(ctx, "contentId")
	if !ok {
		return
	}

	var comments []models.Comment
	if err := cc.db.Where("content_id = ?", contentID).Order("created_at ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40062, err.Error())
		return
	}

	utils.Success(ctx, comments)
}

// Update replaces comment text; only the author may do so.
func (cc *CommentController) Update(ctx *gin.Context) {
	commentID, ok := parseUUIDParam(ctx, "commentId")
	if !ok {
		return
	}

	var req struct {
		CommentText string `json:"comment_text"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42272, "invalid comment payload")
		return
	}

	text := utils.Sanitize(req.CommentText)
	if !models.ValidCommentText(text) {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42273, "comment_text must be 1 to 1000 characters")
		return
	}

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40420, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40063, err.Error())
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40115, "unauthorized")
		return
	}
	if comment.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40303, "not authorized to update this comment")
		return
	}

	comment.CommentText = text
	if err := cc.db.Save(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40064, err.Error())
		return
	}

	utils.Success(ctx, comment)
}

// Delete removes a comment; only the author may do so.
func (cc *CommentController) Delete(ctx *gin.Context) {
	commentID, ok := parseUUIDParam(ctx, "commentId")
	if !ok {
		return
	}

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40421, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40065, err.Error())
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40116, "unauthorized")
		return
	}
	if comment.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40304, "not authorized to delete this comment")
		return
	}

	if err := cc.db.Delete(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40066, err.Error())
		return
	}

	utils.Success(ctx, comment)
}
