package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Sort fields and orders accepted by the filter pipeline.
const (
	SortByDate      = "date"
	SortByTitle     = "title"
	SortByReactions = "reactions"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"

	DefaultPageSize = 10
	MaxPageSize     = 100
)

// FilterSpec is a parsed content filter query. Zero values mean "not set";
// page and size are normalized to 1 and DefaultPageSize.
type FilterSpec struct {
	Search     string
	CategoryID *uuid.UUID
	TagIDs     []uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string // SortByDate, SortByTitle or SortByReactions; empty means created_at desc
	SortOrder  string // SortOrderAsc or SortOrderDesc; defaults to desc
	Page       int
	Size       int
}

// PagedResult is one page of filtered content plus pagination totals.
type PagedResult struct {
	Items []ContentView `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Pages int           `json:"pages"`
}

// ContentFilter runs the filter/sort/paginate pipeline on top of a ContentStore.
type ContentFilter struct {
	store ContentStore
}

// NewContentFilter wires the pipeline to a store.
func NewContentFilter(store ContentStore) *ContentFilter {
	return &ContentFilter{store: store}
}

// GetFilteredContents materializes every row matching the spec, attaches a
// fresh reaction count per row, sorts and slices the page.
//
// Sorting by reactions cannot be pushed to the store, so the whole filtered
// set is materialized before pagination; that is a known scaling limit of
// this pipeline. Reaction counts are recomputed on every call, never cached.
func (f *ContentFilter) GetFilteredContents(ctx context.Context, spec FilterSpec) (*PagedResult, error) {
	spec = normalizeSpec(spec)

	query := ContentQuery{
		Search:      spec.Search,
		CreatedFrom: spec.StartDate,
		CreatedTo:   spec.EndDate,
		OrderBy:     OrderByCreatedAt,
		OrderDesc:   true,
	}

	// One inner-join path per query: category wins when both filters are set.
	if spec.CategoryID != nil {
		query.CategoryID = spec.CategoryID
	} else if len(spec.TagIDs) > 0 {
		query.TagIDs = spec.TagIDs
	}

	// Scalar sorts are pushed to the store; the reactions sort happens below.
	switch spec.SortBy {
	case SortByDate:
		query.OrderBy = OrderByCreatedAt
		query.OrderDesc = spec.SortOrder == SortOrderDesc
	case SortByTitle:
		query.OrderBy = OrderByTitle
		query.OrderDesc = spec.SortOrder == SortOrderDesc
	}

	contents, err := f.store.QueryContents(ctx, query)
	if err != nil {
		return nil, err
	}

	items := make([]ContentView, 0, len(contents))
	for _, content := range contents {
		view := BuildContentView(content)
		count, err := f.store.CountReactions(ctx, content.ID)
		if err != nil {
			return nil, err
		}
		view.ReactionsCount = &count
		items = append(items, view)
	}

	if spec.SortBy == SortByReactions {
		desc := spec.SortOrder == SortOrderDesc
		// Stable: equal counts keep the storage order (created_at desc).
		sort.SliceStable(items, func(i, j int) bool {
			a, b := *items[i].ReactionsCount, *items[j].ReactionsCount
			if desc {
				return a > b
			}
			return a < b
		})
	}

	total := len(items)
	pages := 0
	if total > 0 {
		pages = (total + spec.Size - 1) / spec.Size
	}

	start := (spec.Page - 1) * spec.Size
	if start > total {
		start = total
	}
	end := start + spec.Size
	if end > total {
		end = total
	}

	return &PagedResult{
		Items: items[start:end],
		Total: total,
		Page:  spec.Page,
		Size:  spec.Size,
		Pages: pages,
	}, nil
}

// normalizeSpec applies paging defaults/bounds, the desc sort-order default
// and second-precision truncation of the date bounds.
func normalizeSpec(spec FilterSpec) FilterSpec {
	if spec.Page < 1 {
		spec.Page = 1
	}
	if spec.Size < 1 {
		spec.Size = DefaultPageSize
	}
	if spec.Size > MaxPageSize {
		spec.Size = MaxPageSize
	}
	if spec.SortOrder != SortOrderAsc {
		spec.SortOrder = SortOrderDesc
	}
	if spec.StartDate != nil {
		t := spec.StartDate.Truncate(time.Second)
		spec.StartDate = &t
	}
	if spec.EndDate != nil {
		t := spec.EndDate.Truncate(time.Second)
		spec.EndDate = &t
	}
	return spec
}
