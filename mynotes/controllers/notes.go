// mynotes/controllers/notes.go
package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mynotes/mynotes/pagination"
	"mynotes/mynotes/sources/psql/dao"
	"mynotes/mynotes/sources/psql/models"
)

// Business-level errors. Transport maps these with errors.Is; anything else
// is an unexpected store failure and surfaces as a 500.
var (
	ErrNotFound   = errors.New("note not found")
	ErrValidation = errors.New("validation failed")
)

// Pagination describes one page window of the full note collection.
type Pagination struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ListResult is the list endpoint payload: one page of notes plus counters.
type ListResult struct {
	Notes      []models.Note `json:"notes"`
	Pagination Pagination    `json:"pagination"`
}

// UpdateFields carries a partial update; nil fields are left untouched.
type UpdateFields struct {
	Title       *string
	Description *string
	Format      *string
}

type NotesController struct {
	dao *dao.NoteDAO
}

func NewNotesController(dao *dao.NoteDAO) *NotesController {
	return &NotesController{dao: dao}
}

// List returns one page ordered most-recently-updated first. A page past
// the end yields an empty Notes slice, never an error.
func (c *NotesController) List(ctx context.Context, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}

	count, err := c.dao.CountNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count notes: %w", err)
	}
	totalItems := int(count)

	offset, totalPages := pagination.Window(page, pageSize, totalItems)
	notes, err := c.dao.ListNotes(ctx, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return &ListResult{
		Notes: notes,
		Pagination: Pagination{
			TotalItems:   totalItems,
			TotalPages:   totalPages,
			CurrentPage:  page,
			ItemsPerPage: pageSize,
		},
	}, nil
}

func (c *NotesController) Get(ctx context.Context, id uint) (*models.Note, error) {
	note, err := c.dao.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

// Create persists a new note. Format defaults to card when absent.
func (c *NotesController) Create(ctx context.Context, title string, description *string, format *string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	f := models.FormatCard
	if format != nil {
		f = *format
	}
	if !models.AllowedFormat(f) {
		return nil, fmt.Errorf("%w: unsupported format %q", ErrValidation, f)
	}

	note := &models.Note{
		Title:       title,
		Description: description,
		Format:      f,
	}
	if err := c.dao.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// Update applies the non-nil fields and returns the freshly reloaded note,
// so the caller observes the refreshed updatedAt.
func (c *NotesController) Update(ctx context.Context, id uint, fields UpdateFields) (*models.Note, error) {
	updates := map[string]interface{}{}
	if fields.Title != nil {
		if strings.TrimSpace(*fields.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Format != nil {
		if !models.AllowedFormat(*fields.Format) {
			return nil, fmt.Errorf("%w: unsupported format %q", ErrValidation, *fields.Format)
		}
		updates["format"] = *fields.Format
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	affected, err := c.dao.UpdateNote(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	note, err := c.dao.GetNoteByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload note: %w", err)
	}
	if note == nil {
		return nil, ErrNotFound
	}
	return note, nil
}

func (c *NotesController) Delete(ctx context.Context, id uint) error {
	affected, err := c.dao.DeleteNote(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
