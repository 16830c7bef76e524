package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Content is a user-authored item. Categories and tags are never stored on the
// row itself; they are derived from the join tables at query time.
type Content struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:char(36);index;not null" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	ContentText string    `gorm:"type:text;not null" json:"content_text"`
	ImageURL    *string   `gorm:"size:1024" json:"image_url"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Raw join rows, eager-loaded by the store. Not serialized: the
	// transformer flattens them into categories/tags lists.
	ContentCategories []ContentCategory `gorm:"foreignKey:ContentID" json:"-"`
	ContentTags       []ContentTag      `gorm:"foreignKey:ContentID" json:"-"`
}

// TableName matches the external schema, which uses a singular table name.
func (Content) TableName() string { return "content" }

// BeforeCreate assigns the UUID primary key and timestamps.
func (c *Content) BeforeCreate(tx *gorm.DB) error {
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
func (c *Content) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
