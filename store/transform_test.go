package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mbelova/canvashare/models"
)

func TestBuildContentView_FlattensJoins(t *testing.T) {
	catA := models.Category{ID: uuid.New(), Name: "news"}
	catB := models.Category{ID: uuid.New(), Name: "art"}
	tag := models.Tag{ID: uuid.New(), Name: "golang"}

	content := models.Content{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "hello",
		ContentText: "body",
		CreatedAt:   time.Now(),
		ContentCategories: []models.ContentCategory{
			{ContentID: uuid.New(), CategoryID: catA.ID, Category: &catA},
			{ContentID: uuid.New(), CategoryID: catB.ID, Category: &catB},
		},
		ContentTags: []models.ContentTag{
			{ContentID: uuid.New(), TagID: tag.ID, Tag: &tag},
		},
	}

	view := BuildContentView(content)
	assert.Equal(t, content.ID, view.ID)
	assert.Equal(t, []models.Category{catA, catB}, view.Categories)
	assert.Equal(t, []models.Tag{tag}, view.Tags)
	assert.Nil(t, view.ReactionsCount)
}

func TestBuildContentView_SkipsDanglingJoinRows(t *testing.T) {
	cat := models.Category{ID: uuid.New(), Name: "news"}

	// The second join row points at a deleted category; it must disappear
	// silently rather than surface as a null entry.
	content := models.Content{
		ID: uuid.New(),
		ContentCategories: []models.ContentCategory{
			{CategoryID: cat.ID, Category: &cat},
			{CategoryID: uuid.New(), Category: nil},
		},
		ContentTags: []models.ContentTag{
			{TagID: uuid.New(), Tag: nil},
		},
	}

	view := BuildContentView(content)
	assert.Equal(t, []models.Category{cat}, view.Categories)
	assert.Empty(t, view.Tags)
	assert.NotNil(t, view.Tags)
}

func TestBuildContentView_EmptyAssociations(t *testing.T) {
	view := BuildContentView(models.Content{ID: uuid.New()})
	assert.NotNil(t, view.Categories)
	assert.NotNil(t, view.Tags)
	assert.Empty(t, view.Categories)
	assert.Empty(t, view.Tags)
}

func TestBuildContentViews_PreservesOrder(t *testing.T) {
	first := models.Content{ID: uuid.New(), Title: "first"}
	second := models.Content{ID: uuid.New(), Title: "second"}

	views := BuildContentViews([]models.Content{first, second})
	assert.Len(t, views, 2)
	assert.Equal(t, first.ID, views[0].ID)
	assert.Equal(t, second.ID, views[1].ID)
}
