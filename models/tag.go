package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels content items; same relationship shape as Category.
type Tag struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns the UUID primary key and created timestamp.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	return nil
}

// ContentTag is a content-tag join row with no attributes beyond the two keys.
type ContentTag struct {
	ContentID uuid.UUID `gorm:"type:char(36);primaryKey" json:"content_id"`
	TagID     uuid.UUID `gorm:"type:char(36);primaryKey" json:"tag_id"`
	Tag       *Tag      `gorm:"foreignKey:TagID" json:"-"`
}

// TableName matches the external join table.
func (ContentTag) TableName() string { return "content_tags" }
