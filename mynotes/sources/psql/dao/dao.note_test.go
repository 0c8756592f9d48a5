package dao

import (
	"context"
	"testing"
	"time"

	"mynotes/mynotes/sources/psql/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Helpers ---
func setupTestDAO(t *testing.T) *NoteDAO {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Note{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return NewNoteDAO(db)
}

func seedNote(t *testing.T, dao *NoteDAO, title string, updatedAt time.Time) *models.Note {
	note := &models.Note{
		Title:     title,
		Format:    models.FormatCard,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
	if err := dao.CreateNote(context.Background(), note); err != nil {
		t.Fatalf("failed to seed note %q: %v", title, err)
	}
	return note
}

func TestCreateAndGetNote(t *testing.T) {
	dao := setupTestDAO(t)
	ctx := context.Background()

	desc := "Milk, eggs"
	note := &models.Note{Title: "Groceries", Description: &desc, Format: models.FormatCard}
	if err := dao.CreateNote(ctx, note); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if note.ID == 0 {
		t.Error("expected generated id")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("expected store-assigned timestamps")
	}

	got, err := dao.GetNoteByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil || got.Title != "Groceries" || got.Description == nil || *got.Description != desc {
		t.Errorf("unexpected note: %+v", got)
	}
}

func TestGetNoteByIDMissing(t *testing.T) {
	dao := setupTestDAO(t)

	got, err := dao.GetNoteByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing note, got %+v", got)
	}
}

func TestListNotesOrderedByUpdatedAtDesc(t *testing.T) {
	dao := setupTestDAO(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, dao, "oldest", base)
	seedNote(t, dao, "middle", base.Add(time.Hour))
	seedNote(t, dao, "newest", base.Add(2*time.Hour))

	notes, err := dao.ListNotes(context.Background(), 0, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if notes[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, notes[i].Title)
		}
	}
}

func TestListNotesWindow(t *testing.T) {
	dao := setupTestDAO(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		seedNote(t, dao, "note", base.Add(time.Duration(i)*time.Minute))
	}

	page1, err := dao.ListNotes(context.Background(), 0, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page1) != 8 {
		t.Errorf("expected full first page of 8, got %d", len(page1))
	}

	page2, err := dao.ListNotes(context.Background(), 8, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page2) != 1 {
		t.Errorf("expected 1 item on last page, got %d", len(page2))
	}

	past, err := dao.ListNotes(context.Background(), 16, 8)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(past) != 0 {
		t.Errorf("expected empty window past the end, got %d", len(past))
	}

	count, err := dao.CountNotes(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 9 {
		t.Errorf("expected count 9, got %d", count)
	}
}

func TestUpdateNoteRowsAffected(t *testing.T) {
	dao := setupTestDAO(t)
	ctx := context.Background()
	note := seedNote(t, dao, "before", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	affected, err := dao.UpdateNote(ctx, note.ID, map[string]interface{}{"title": "after"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	got, err := dao.GetNoteByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "after" {
		t.Errorf("expected updated title, got %q", got.Title)
	}
	if !got.UpdatedAt.After(note.UpdatedAt) {
		t.Errorf("expected refreshed updatedAt, got %v (was %v)", got.UpdatedAt, note.UpdatedAt)
	}

	affected, err = dao.UpdateNote(ctx, 9999, map[string]interface{}{"title": "x"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected for missing id, got %d", affected)
	}
}

func TestDeleteNoteRowsAffected(t *testing.T) {
	dao := setupTestDAO(t)
	ctx := context.Background()
	note := seedNote(t, dao, "doomed", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	affected, err := dao.DeleteNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	got, err := dao.GetNoteByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected hard delete, still found %+v", got)
	}

	affected, err = dao.DeleteNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 rows affected on second delete, got %d", affected)
	}
}
