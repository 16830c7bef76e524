package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReactionType is the fixed emoji-style reaction enumeration.
type ReactionType string

const (
	ReactionLike  ReactionType = "like"
	ReactionLove  ReactionType = "love"
	ReactionLaugh ReactionType = "laugh"
	ReactionWow   ReactionType = "wow"
	ReactionSad   ReactionType = "sad"
	ReactionAngry ReactionType = "angry"
)

// ReactionTypes lists every reaction type in a stable order; reaction
// summaries emit one entry per type, including zero counts.
var ReactionTypes = []ReactionType{
	ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry,
}

// Valid reports whether the value is one of the enumerated reaction types.
func (r ReactionType) Valid() bool {
	switch r {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// Reaction is functionally unique per (content, user): creating a second
// reaction from the same user replaces the first.
type Reaction struct {
	ID           uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	ContentID    uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_reactions_content_user" json:"content_id"`
	UserID       uuid.UUID    `gorm:"type:char(36);not null;uniqueIndex:idx_reactions_content_user" json:"user_id"`
	ReactionType ReactionType `gorm:"size:16;not null" json:"reaction_type"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// BeforeCreate assigns the UUID primary key and timestamps.
func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	return nil
}
