// mynotes/client/state.go
package client

import (
	"mynotes/mynotes/controllers"
	"mynotes/mynotes/pagination"
	"mynotes/mynotes/sources/psql/models"
)

// Effect tells the caller what to do after a state mutation. The controller
// itself never performs I/O.
type Effect int

const (
	// EffectNone means the local state already matches the server.
	EffectNone Effect = iota
	// EffectRefetch means the current page must be fetched again.
	EffectRefetch
)

// State is one snapshot of the UI-visible note state: the current page's
// items in server order plus the pagination counters, and the transient
// selection for the detail view.
type State struct {
	Notes       []models.Note
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PageSize    int
	Selected    *models.Note
}

// Controller owns the client-side note state. Every mutation goes through
// one of the Apply/Set handlers; each returns the follow-up Effect so the
// common case (create or delete while on page 1) stays a single request.
type Controller struct {
	state State
}

func NewController(pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &Controller{state: State{CurrentPage: 1, PageSize: pageSize}}
}

// State returns a snapshot; the Notes slice is copied so callers cannot
// mutate controller state behind its back.
func (c *Controller) State() State {
	s := c.state
	s.Notes = append([]models.Note(nil), c.state.Notes...)
	return s
}

// ApplyList replaces the visible page with a fresh server response.
func (c *Controller) ApplyList(res *controllers.ListResult) {
	c.state.Notes = append([]models.Note(nil), res.Notes...)
	c.state.TotalItems = res.Pagination.TotalItems
	c.state.TotalPages = res.Pagination.TotalPages
	c.state.CurrentPage = res.Pagination.CurrentPage
}

// ApplyCreate folds a successful create into local state. On page 1 the new
// note is prepended and the page truncated to PageSize, no refetch needed:
// creation always yields the most-recently-updated note and the list sorts
// descending by updatedAt, so the server would show it first anyway. Off
// page 1 we jump back to page 1 and refetch.
func (c *Controller) ApplyCreate(note models.Note) Effect {
	c.state.TotalItems++
	c.state.TotalPages = totalPages(c.state.TotalItems, c.state.PageSize)

	if c.state.CurrentPage == 1 {
		c.state.Notes = append([]models.Note{note}, c.state.Notes...)
		if len(c.state.Notes) > c.state.PageSize {
			c.state.Notes = c.state.Notes[:c.state.PageSize]
		}
		return EffectNone
	}

	c.state.CurrentPage = 1
	return EffectRefetch
}

// ApplyUpdate replaces the matching note in place. The page is deliberately
// not reordered even though a server refetch would move the edited note to
// the top; jumping cards around under the cursor reads as a glitch.
func (c *Controller) ApplyUpdate(note models.Note) {
	for i := range c.state.Notes {
		if c.state.Notes[i].ID == note.ID {
			c.state.Notes[i] = note
			break
		}
	}
	if c.state.Selected != nil && c.state.Selected.ID == note.ID {
		c.state.Selected = &note
	}
}

// ApplyDelete splices the note out and fixes up the page position so the
// user never lands on an empty page while notes remain.
func (c *Controller) ApplyDelete(id uint) Effect {
	for i := range c.state.Notes {
		if c.state.Notes[i].ID == id {
			c.state.Notes = append(c.state.Notes[:i], c.state.Notes[i+1:]...)
			break
		}
	}
	if c.state.Selected != nil && c.state.Selected.ID == id {
		c.state.Selected = nil
	}

	c.state.TotalItems--
	c.state.TotalPages = totalPages(c.state.TotalItems, c.state.PageSize)

	switch {
	case c.state.CurrentPage > c.state.TotalPages && c.state.TotalPages > 0:
		c.state.CurrentPage = c.state.TotalPages
		return EffectRefetch
	case len(c.state.Notes) == 0 && c.state.CurrentPage > 1:
		c.state.CurrentPage--
		return EffectRefetch
	case len(c.state.Notes) == 0 && c.state.TotalItems > 0:
		// Pull the next item forward instead of showing an empty page
		return EffectRefetch
	}
	return EffectNone
}

// SetPage navigates to a page. Every navigation is a server round trip,
// previously visited pages are not cached.
func (c *Controller) SetPage(page int) Effect {
	if page < 1 {
		page = 1
	}
	c.state.CurrentPage = page
	return EffectRefetch
}

// Select opens the detail view for a note.
func (c *Controller) Select(note models.Note) {
	c.state.Selected = &note
}

// CloseDetail dismisses the detail view.
func (c *Controller) CloseDetail() {
	c.state.Selected = nil
}

// PageNumbers returns the page-number sequence for rendering pagination
// controls, with pagination.Ellipsis marking elided runs.
func (c *Controller) PageNumbers() []int {
	return pagination.PageNumbers(c.state.CurrentPage, c.state.TotalPages)
}

func totalPages(totalItems, pageSize int) int {
	if totalItems < 0 {
		totalItems = 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
