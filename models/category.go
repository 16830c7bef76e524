package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups content items. Referenced by zero or more content rows via
// the content_categories join table.
type Category struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate assigns the UUID primary key and created timestamp.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return nil
}

// ContentCategory is a content-category join row: two foreign keys, no
// metadata. The Category pointer stays nil when the referenced row is gone.
type ContentCategory struct {
	ContentID  uuid.UUID `gorm:"type:char(36);primaryKey" json:"content_id"`
	CategoryID uuid.UUID `gorm:"type:char(36);primaryKey" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// TableName matches the external join table.
func (ContentCategory) TableName() string { return "content_categories" }
