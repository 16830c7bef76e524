package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbelova/canvashare/models"
)

// ContentView is the canonical API shape of a content row: join wrappers are
// flattened into categories/tags lists and the reaction count is attached when
// the filter pipeline computed it.
type ContentView struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"user_id"`
	Title          string            `json:"title"`
	Description    *string           `json:"description"`
	ContentText    string            `json:"content_text"`
	ImageURL       *string           `json:"image_url"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Categories     []models.Category `json:"categories"`
	Tags           []models.Tag      `json:"tags"`
	ReactionsCount *int64            `json:"reactions_count,omitempty"`
}

// BuildContentView flattens one raw content row. Join rows whose target was
// deleted load with a nil pointer and are skipped, so dangling foreign keys in
// the join tables never surface as errors or null list entries.
func BuildContentView(content models.Content) ContentView {
	categories := make([]models.Category, 0, len(content.ContentCategories))
	for _, cc := range content.ContentCategories {
		if cc.Category != nil {
			categories = append(categories, *cc.Category)
		}
	}

	tags := make([]models.Tag, 0, len(content.ContentTags))
	for _, ct := range content.ContentTags {
		if ct.Tag != nil {
			tags = append(tags, *ct.Tag)
		}
	}

	return ContentView{
		ID:          content.ID,
		UserID:      content.UserID,
		Title:       content.Title,
		Description: content.Description,
		ContentText: content.ContentText,
		ImageURL:    content.ImageURL,
		CreatedAt:   content.CreatedAt,
		UpdatedAt:   content.UpdatedAt,
		Categories:  categories,
		Tags:        tags,
	}
}

// BuildContentViews maps a slice of raw rows, preserving order.
func BuildContentViews(contents []models.Content) []ContentView {
	views := make([]ContentView, 0, len(contents))
	for _, c := range contents {
		views = append(views, BuildContentView(c))
	}
	return views
}
