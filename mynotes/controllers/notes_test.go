package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"mynotes/mynotes/sources/psql/dao"
	"mynotes/mynotes/sources/psql/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---
func setupTestController(t *testing.T) *NotesController {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Note{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewNotesController(dao.NewNoteDAO(db))
}

func mustCreate(t *testing.T, ctrl *NotesController, title string) *models.Note {
	note, err := ctrl.Create(context.Background(), title, nil, nil)
	if err != nil {
		t.Fatalf("failed to create %q: %v", title, err)
	}
	return note
}

func TestCreateDefaultsFormatToCard(t *testing.T) {
	ctrl := setupTestController(t)
	desc := "Milk, eggs"

	note, err := ctrl.Create(context.Background(), "Groceries", &desc, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if note.Format != models.FormatCard {
		t.Errorf("expected format %q, got %q", models.FormatCard, note.Format)
	}
	if note.ID == 0 {
		t.Error("expected generated id")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("expected timestamps on the created note")
	}
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	ctrl := setupTestController(t)
	ctx := context.Background()

	for _, title := range []string{"", "   "} {
		_, err := ctrl.Create(ctx, title, nil, nil)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("title %q: expected ErrValidation, got %v", title, err)
		}
	}

	// Nothing may be persisted by a failed create
	res, err := ctrl.List(ctx, 1, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Pagination.TotalItems != 0 {
		t.Errorf("expected no persisted rows, got %d", res.Pagination.TotalItems)
	}
}

func TestCreateRejectsUnknownFormat(t *testing.T) {
	ctrl := setupTestController(t)
	format := "table"

	_, err := ctrl.Create(context.Background(), "Groceries", nil, &format)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGetMissingNote(t *testing.T) {
	ctrl := setupTestController(t)

	_, err := ctrl.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReturnsRefreshedNote(t *testing.T) {
	ctrl := setupTestController(t)
	ctx := context.Background()
	note := mustCreate(t, ctrl, "before")

	before, err := ctrl.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	title := "after"
	desc := "new body"
	updated, err := ctrl.Update(ctx, note.ID, UpdateFields{Title: &title, Description: &desc})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "after" || updated.Description == nil || *updated.Description != desc {
		t.Errorf("unexpected updated note: %+v", updated)
	}
	if !updated.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("expected updatedAt %v to be after %v", updated.UpdatedAt, before.UpdatedAt)
	}

	// A re-fetch observes the same refreshed values
	got, err := ctrl.Get(ctx, note.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "after" || !got.UpdatedAt.After(before.UpdatedAt) {
		t.Errorf("re-fetch did not observe the update: %+v", got)
	}
}

func TestUpdateValidation(t *testing.T) {
	ctrl := setupTestController(t)
	ctx := context.Background()
	note := mustCreate(t, ctrl, "stable")

	empty := ""
	if _, err := ctrl.Update(ctx, note.ID, UpdateFields{Title: &empty}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title: expected ErrValidation, got %v", err)
	}

	bad := "banner"
	if _, err := ctrl.Update(ctx, note.ID, UpdateFields{Format: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad format: expected ErrValidation, got %v", err)
	}

	if _, err := ctrl.Update(ctx, note.ID, UpdateFields{}); !errors.Is(err, ErrValidation) {
		t.Errorf("no fields: expected ErrValidation, got %v", err)
	}

	title := "x"
	if _, err := ctrl.Update(ctx, 9999, UpdateFields{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNote(t *testing.T) {
	ctrl := setupTestController(t)
	ctx := context.Background()

	if err := ctrl.Delete(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: expected ErrNotFound, got %v", err)
	}

	note := mustCreate(t, ctrl, "doomed")
	if err := ctrl.Delete(ctx, note.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctrl.Get(ctx, note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListPagination(t *testing.T) {
	ctrl := setupTestController(t)
	ctx := context.Background()
	for i := 0; i < 9; i++ {
		mustCreate(t, ctrl, "note")
	}

	page1, err := ctrl.List(ctx, 1, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page1.Notes) != 8 {
		t.Errorf("expected 8 notes on page 1, got %d", len(page1.Notes))
	}
	if page1.Pagination.TotalItems != 9 || page1.Pagination.TotalPages != 2 {
		t.Errorf("unexpected pagination: %+v", page1.Pagination)
	}
	if page1.Pagination.CurrentPage != 1 || page1.Pagination.ItemsPerPage != 8 {
		t.Errorf("unexpected pagination: %+v", page1.Pagination)
	}

	page2, err := ctrl.List(ctx, 2, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page2.Notes) != 1 {
		t.Errorf("expected 1 note on last page, got %d", len(page2.Notes))
	}

	// A page past the end is not an error, just empty
	page5, err := ctrl.List(ctx, 5, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page5.Notes) != 0 {
		t.Errorf("expected empty page past the end, got %d", len(page5.Notes))
	}
	if page5.Pagination.CurrentPage != 5 {
		t.Errorf("expected requested page echoed back, got %d", page5.Pagination.CurrentPage)
	}

	// Page below 1 falls back to page 1
	low, err := ctrl.List(ctx, 0, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if low.Pagination.CurrentPage != 1 || len(low.Notes) != 8 {
		t.Errorf("expected page 1 fallback, got %+v", low.Pagination)
	}
}
