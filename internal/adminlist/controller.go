package adminlist

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mealbadge/mealbadge-go/internal/gateway"
	"github.com/mealbadge/mealbadge-go/internal/pkg/apperrors"
)

// MemberPageSize is the fixed page size of the admin member table
const MemberPageSize = 6

// Fetcher loads one page from the backend. page is 1-based.
type Fetcher[T any] func(ctx context.Context, page, size int, filterKey, filterValue string) (gateway.Page[T], error)

// Saver sends a row's editable fields and returns the server's echoed row
type Saver[T any] func(ctx context.Context, id int64, draft T) (T, error)

// Remover deletes a row by id
type Remover func(ctx context.Context, id int64) error

// EditingRow is the editing half of the edit-state union: at most one row is
// in edit mode, identified by ID, with Draft holding the local edits. A nil
// *EditingRow is the NoRowEditing half, so the single-editor invariant holds
// by construction.
type EditingRow[T any] struct {
	ID    int64
	Draft T
}

// Controller drives a server-paged, optionally filtered table. Every fetch
// replaces the page wholesale; a request-generation counter discards
// responses that were superseded by a newer fetch, so rapid page or filter
// changes cannot overwrite current state with stale data.
type Controller[T any] struct {
	fetch    Fetcher[T]
	save     Saver[T]
	remove   Remover
	rowID    func(T) int64
	pageSize int
	logger   zerolog.Logger

	current     gateway.Page[T]
	filterKey   string
	filterValue string
	generation  atomic.Uint64
	editing     *EditingRow[T]
}

// NewController creates a Controller over the given backend operations
func NewController[T any](fetch Fetcher[T], save Saver[T], remove Remover, rowID func(T) int64, pageSize int, logger zerolog.Logger) *Controller[T] {
	return &Controller[T]{
		fetch:    fetch,
		save:     save,
		remove:   remove,
		rowID:    rowID,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Rows returns the rows of the current page
func (c *Controller[T]) Rows() []T {
	return c.current.Items
}

// Page returns the current 1-based page number
func (c *Controller[T]) Page() int {
	if c.current.Page < 1 {
		return 1
	}
	return c.current.Page
}

// TotalPages returns the page count of the last successful fetch
func (c *Controller[T]) TotalPages() int {
	return c.current.TotalPages
}

// TotalElements returns the element count of the last successful fetch
func (c *Controller[T]) TotalElements() int {
	return c.current.TotalElements
}

// Editing returns the row currently in edit mode, or nil
func (c *Controller[T]) Editing() *EditingRow[T] {
	return c.editing
}

// Fetch loads a page with the given filter, replacing the current page. On
// transport failure the table degrades to a single empty page and the error
// is returned for the caller to surface. A response superseded by a newer
// Fetch is discarded and reported as stale.
func (c *Controller[T]) Fetch(ctx context.Context, page int, filterKey, filterValue string) error {
	if page < 1 {
		page = 1
	}

	gen := c.generation.Add(1)
	c.filterKey = filterKey
	c.filterValue = filterValue

	result, err := c.fetch(ctx, page, c.pageSize, filterKey, filterValue)

	if c.generation.Load() != gen {
		c.logger.Debug().Int("page", page).Msg("Discarding stale list response")
		return apperrors.ErrStaleResponse
	}

	if err != nil {
		c.current = gateway.Page[T]{Page: 1, PageSize: c.pageSize, TotalPages: 1}
		return fmt.Errorf("list fetch failed: %w", err)
	}

	c.current = result
	return nil
}

// Edit puts the row with the given id into edit mode, seeding the draft from
// the row's current (server-fetched) values. Switching directly from one row
// to another is allowed; unsaved edits on the previous row are dropped.
func (c *Controller[T]) Edit(id int64) error {
	for _, row := range c.current.Items {
		if c.rowID(row) == id {
			c.editing = &EditingRow[T]{ID: id, Draft: row}
			return nil
		}
	}
	return apperrors.ErrRowNotFound
}

// Draft returns a pointer to the draft of the row in edit mode for mutation
func (c *Controller[T]) Draft() (*T, error) {
	if c.editing == nil {
		return nil, apperrors.ErrNoRowEditing
	}
	return &c.editing.Draft, nil
}

// Save sends the edited row to the backend. On success the row is replaced
// with the server's echoed representation, not the local draft, and edit mode
// ends. On failure edit mode stays active and the server error is returned.
func (c *Controller[T]) Save(ctx context.Context) error {
	if c.editing == nil {
		return apperrors.ErrNoRowEditing
	}

	echoed, err := c.save(ctx, c.editing.ID, c.editing.Draft)
	if err != nil {
		return err
	}

	for i, row := range c.current.Items {
		if c.rowID(row) == c.editing.ID {
			c.current.Items[i] = echoed
			break
		}
	}
	c.editing = nil
	return nil
}

// Cancel discards local edits and re-fetches the current page with the
// current filter, restoring the last authoritative server state
func (c *Controller[T]) Cancel(ctx context.Context) error {
	c.editing = nil
	return c.Fetch(ctx, c.Page(), c.filterKey, c.filterValue)
}

// Remove deletes a row after confirmation and re-fetches the current page.
// Re-fetching (rather than splicing the row out locally) keeps the
// pagination counts correct.
func (c *Controller[T]) Remove(ctx context.Context, id int64, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}

	if err := c.remove(ctx, id); err != nil {
		return fmt.Errorf("row delete failed: %w", err)
	}

	return c.Fetch(ctx, c.Page(), c.filterKey, c.filterValue)
}

// ClampGrade clamps an edited grade to the school level's bounds: 1..6 for
// elementary schools (name contains "초등학교"), 1..3 otherwise
func ClampGrade(grade int, schoolName string) int {
	max := 3
	if strings.Contains(schoolName, "초등학교") {
		max = 6
	}
	if grade > max {
		return max
	}
	if grade < 1 {
		return 1
	}
	return grade
}

// ParseGradeInput coerces raw grade input to a clamped grade. Input that is
// not numeric falls back to 1.
func ParseGradeInput(input, schoolName string) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 1
	}
	return ClampGrade(n, schoolName)
}
