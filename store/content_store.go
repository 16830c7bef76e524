package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbelova/canvashare/models"
)

// Columns the store can order by. Derived values such as reaction counts are
// not orderable here; callers sort those after materialization.
const (
	OrderByCreatedAt = "created_at"
	OrderByTitle     = "title"
)

// ContentQuery describes a content fetch against the record store.
//
// CategoryID and TagIDs are inner-join filters: only one join path is applied
// per query, and CategoryID wins when both are set. TagIDs requires content to
// be associated with every listed tag.
type ContentQuery struct {
	CategoryID  *uuid.UUID
	TagIDs      []uuid.UUID
	Search      string // case-insensitive substring across title, description, content_text
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	OrderBy     string // OrderByCreatedAt or OrderByTitle; defaults to created_at
	OrderDesc   bool
}

// ContentStore is the access layer for content rows and their associations.
// It carries no business logic; a query either fully succeeds or fully fails.
type ContentStore interface {
	QueryContents(ctx context.Context, q ContentQuery) ([]models.Content, error)
	GetContent(ctx context.Context, id uuid.UUID) (*models.Content, error)
	CountReactions(ctx context.Context, contentID uuid.UUID) (int64, error)
}

type gormContentStore struct {
	db *gorm.DB
}

// NewContentStore returns a ContentStore backed by the given gorm handle.
func NewContentStore(db *gorm.DB) ContentStore {
	return &gormContentStore{db: db}
}

// QueryContents materializes all matching content rows with their category and
// tag join rows eager-loaded. No pagination happens at this level.
func (s *gormContentStore) QueryContents(ctx context.Context, q ContentQuery) ([]models.Content, error) {
	query := s.db.WithContext(ctx).Model(&models.Content{}).
		Preload("ContentCategories.Category").
		Preload("ContentTags.Tag")

	if q.CategoryID != nil {
		sub := s.db.Model(&models.ContentCategory{}).
			Select("content_id").
			Where("category_id = ?", *q.CategoryID)
		query = query.Where("id IN (?)", sub)
	} else if len(q.TagIDs) > 0 {
		// AND across tags: content must carry every requested tag.
		sub := s.db.Model(&models.ContentTag{}).
			Select("content_id").
			Where("tag_id IN ?", q.TagIDs).
			Group("content_id").
			Having("COUNT(DISTINCT tag_id) = ?", len(q.TagIDs))
		query = query.Where("id IN (?)", sub)
	}

	if q.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *q.CreatedFrom)
	}
	if q.CreatedTo != nil {
		query = query.Where("created_at <= ?", *q.CreatedTo)
	}

	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(content_text) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	orderBy := q.OrderBy
	if orderBy != OrderByCreatedAt && orderBy != OrderByTitle {
		orderBy = OrderByCreatedAt
	}
	direction := "ASC"
	if q.OrderDesc {
		direction = "DESC"
	}
	query = query.Order(orderBy + " " + direction)

	var contents []models.Content
	if err := query.Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

// GetContent loads a single content row with associations, or
// gorm.ErrRecordNotFound.
func (s *gormContentStore) GetContent(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	err := s.db.WithContext(ctx).
		Preload("ContentCategories.Category").
		Preload("ContentTags.Tag").
		First(&content, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &content, nil
}

// CountReactions returns the number of reaction rows for a content item.
func (s *gormContentStore) CountReactions(ctx context.Context, contentID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("content_id = ?", contentID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
