package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mbelova/canvashare/middleware"
	"github.com/mbelova/canvashare/models"
	"github.com/mbelova/canvashare/utils"
)

// ReactionController manages typed reactions on content items.
type ReactionController struct {
	db *gorm.DB
}

// NewReactionController creates a ReactionController.
func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{db: db}
}

// Create upserts the caller's reaction on a content item: a second reaction
// from the same user replaces the first instead of inserting a duplicate.
func (rc *ReactionController) Create(ctx *gin.Context) {
	var req struct {
		ContentID    uuid.UUID           `json:"content_id" binding:"required"`
		ReactionType models.ReactionType `json:"reaction_type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42280, "invalid reaction payload")
		return
	}
	if !req.ReactionType.Valid() {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42281, "invalid reaction type")
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40117, "unauthorized")
		return
	}

	var content models.Content
	if err := rc.db.First(&content, "id = ?", req.ContentID).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "content does not exist")
		return
	}

	reaction := models.Reaction{
		ContentID:    req.ContentID,
		UserID:       userID,
		ReactionType: req.ReactionType,
	}
	err := rc.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "content_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"reaction_type": req.ReactionType,
			"updated_at":    time.Now(),
		}),
	}).Create(&reaction).Error
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40071, err.Error())
		return
	}

	// Reload: on conflict the stored row keeps its original id and created_at.
	var stored models.Reaction
	if err := rc.db.Where("content_id = ? AND user_id = ?", req.ContentID, userID).First(&stored).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40072, err.Error())
		return
	}

	utils.Success(ctx, stored)
}

// reactionCount is one per-type entry of a reaction summary.
type reactionCount struct {
	ReactionType models.ReactionType `json:"reaction_type"`
	Count        int64               `json:"count"`
}

// Get summarizes reactions on a content item: one entry per enumerated type
// (zero counts included) plus the caller's own reaction, if any.
func (rc *ReactionController) Get(ctx *gin.Context) {
	contentID, ok := parseUUIDParam(ctx, "contentId")
	if !ok {
		return
	}

	var rows []reactionCount
	err := rc.db.Model(&models.Reaction{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("content_id = ?", contentID).
		Group("reaction_type").
		Scan(&rows).Error
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40073, err.Error())
		return
	}

	counts := make(map[models.ReactionType]int64, len(rows))
	for _, row := range rows {
		counts[row.ReactionType] = row.Count
	}
	summary := make([]reactionCount, 0, len(models.ReactionTypes))
	for _, rt := range models.ReactionTypes {
		summary = append(summary, reactionCount{ReactionType: rt, Count: counts[rt]})
	}

	var userReaction *models.ReactionType
	if userID, ok := middleware.UserID(ctx); ok {
		var own models.Reaction
		if err := rc.db.Where("content_id = ? AND user_id = ?", contentID, userID).First(&own).Error; err == nil {
			userReaction = &own.ReactionType
		}
	}

	utils.Success(ctx, gin.H{
		"content_id":    contentID,
		"reactions":     summary,
		"user_reaction": userReaction,
	})
}

// Update changes the type of the caller's existing reaction.
func (rc *ReactionController) Update(ctx *gin.Context) {
	contentID, ok := parseUUIDParam(ctx, "contentId")
	if !ok {
		return
	}

	var req struct {
		ReactionType models.ReactionType `json:"reaction_type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42282, "invalid reaction payload")
		return
	}
	if !req.ReactionType.Valid() {
		utils.Error(ctx, http.StatusUnprocessableEntity, 42283, "invalid reaction type")
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40118, "unauthorized")
		return
	}

	var reaction models.Reaction
	if err := rc.db.Where("content_id = ? AND user_id = ?", contentID, userID).First(&reaction).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40422, "reaction not found")
			return
		}
		utils.Error(ctx, http.StatusBadRequest, 40074, err.Error())
		return
	}

	reaction.ReactionType = req.ReactionType
	reaction.UpdatedAt = time.Now()
	if err := rc.db.Save(&reaction).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40075, err.Error())
		return
	}

	utils.Success(ctx, reaction)
}

// Delete removes the caller's reaction. Deleting a reaction that does not
// exist is not an error.
func (rc *ReactionController) Delete(ctx *gin.Context) {
	contentID, ok := parseUUIDParam(ctx, "contentId")
	if !ok {
		return
	}

	userID, ok := middleware.UserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40119, "unauthorized")
		return
	}

	var reaction models.Reaction
	if err := rc.db.Where("content_id = ? AND user_id = ?", contentID, userID).First(&reaction).Error; err != nil {
		utils.Success(ctx, gin.H{"message": "reaction removed"})
		return
	}

	if err := rc.db.Delete(&reaction).Error; err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40076, err.Error())
		return
	}

	utils.Success(ctx, reaction)
}
