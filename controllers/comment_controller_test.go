package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/models"
)

func newCommentRouter(t *testing.T, db *gorm.DB, userID uuid.UUID) *gin.Engine {
	t.Helper()
	loadTestConfig(t)
	cc := NewCommentController(db)
	r := gin.New()
	g := r.Group("/comments", authAs(userID))
	g.POST("", cc.Create)
	g.GET("/:contentId", cc.ListByContent)
	g.PUT("/:commentId", cc.Update)
	g.DELETE("/:commentId", cc.Delete)
	return r
}

func TestCommentCreateAndList(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "reader@example.com")
	content := seedContentRow(t, db, user.ID, "post")
	r := newCommentRouter(t, db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/comments", gin.H{
		"content_id":   content.ID,
		"comment_text": "nice post",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var created models.Comment
	decodeData(t, w, &created)
	assert.Equal(t, content.ID, created.ContentID)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, "nice post", created.CommentText)

	w = performJSON(t, r, http.MethodGet, "/comments/"+content.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var comments []models.Comment
	decodeData(t, w, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, created.ID, comments[0].ID)
}

func TestCommentTextBounds(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "reader@example.com")
	content := seedContentRow(t, db, user.ID, "post")
	r := newCommentRouter(t, db, user.ID)

	cases := []struct {
		name     string
		text     string
		wantCode int
	}{
		{"empty", "", http.StatusUnprocessableEntity},
		{"single character", "a", http.StatusOK},
		{"exactly at limit", strings.Repeat("a", 1000), http.StatusOK},
		{"one over limit", strings.Repeat("a", 1001), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performJSON(t, r, http.MethodPost, "/comments", gin.H{
				"content_id":   content.ID,
				"comment_text": tc.text,
			})
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestCommentOnMissingContent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "reader@example.com")
	r := newCommentRouter(t, db, user.ID)

	w := performJSON(t, r, http.MethodPost, "/comments", gin.H{
		"content_id":   uuid.New(),
		"comment_text": "orphan",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "content does not exist", decodeEnvelope(t, w).Message)
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.com")
	other := seedUser(t, db, "other@example.com")
	content := seedContentRow(t, db, author.ID, "post")

	comment := models.Comment{ContentID: content.ID, UserID: author.ID, CommentText: "original"}
	require.NoError(t, db.Create(&comment).Error)

	r := newCommentRouter(t, db, other.ID)
	w := performJSON(t, r, http.MethodPut, "/comments/"+comment.ID.String(), gin.H{
		"comment_text": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newCommentRouter(t, db, author.ID)
	w = performJSON(t, r, http.MethodPut, "/comments/"+comment.ID.String(), gin.H{
		"comment_text": "edited",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Comment
	decodeData(t, w, &updated)
	assert.Equal(t, "edited", updated.CommentText)
}

func TestCommentDelete(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "author@example.com")
	other := seedUser(t, db, "other@example.com")
	content := seedContentRow(t, db, author.ID, "post")

	comment := models.Comment{ContentID: content.ID, UserID: author.ID, CommentText: "bye"}
	require.NoError(t, db.Create(&comment).Error)

	r := newCommentRouter(t, db, other.ID)
	w := performJSON(t, r, http.MethodDelete, "/comments/"+comment.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = newCommentRouter(t, db, author.ID)
	w = performJSON(t, r, http.MethodDelete, "/comments/"+comment.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	w = performJSON(t, r, http.MethodDelete, "/comments/"+comment.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
