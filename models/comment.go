package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment text length bounds, validated at creation and update.
const (
	CommentMinLen = 1
	CommentMaxLen = 1000
)

// Comment is a reply to a content item, mutable only by its author.
type Comment struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	ContentID   uuid.UUID `gorm:"type:char(36);index;not null" json:"content_id"`
	UserID      uuid.UUID `gorm:"type:char(36);index;not null" json:"user_id"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns the UUID primary key and timestamps.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (c *Comment) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// ValidCommentText reports whether text length is within the 1..1000 rune bounds.
func ValidCommentText(text string) bool {
	l := len([]rune(text))
	return l >= CommentMinLen && l <= CommentMaxLen
}
