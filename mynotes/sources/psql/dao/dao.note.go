// mynotes/sources/psql/dao/dao.note.go
package dao

import (
	"context"
	"errors"

	"mynotes/mynotes/sources/psql/models"

	"gorm.io/gorm"
)

type NoteDAO struct {
	DB *gorm.DB
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{DB: db}
}

func (dao *NoteDAO) CreateNote(ctx context.Context, note *models.Note) error {
	return dao.DB.WithContext(ctx).Create(note).Error
}

// GetNoteByID returns nil, nil when no row matches.
func (dao *NoteDAO) GetNoteByID(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	err := dao.DB.WithContext(ctx).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// ListNotes returns one page window ordered most-recently-updated first.
// The descending updated_at order is a contract of the list endpoint, not
// an incidental database behavior.
func (dao *NoteDAO) ListNotes(ctx context.Context, offset, limit int) ([]models.Note, error) {
	notes := make([]models.Note, 0, limit)
	err := dao.DB.WithContext(ctx).
		Order("updated_at desc").
		Offset(offset).
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (dao *NoteDAO) CountNotes(ctx context.Context) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).Model(&models.Note{}).Count(&count).Error
	return count, err
}

// UpdateNote applies a partial update and reports how many rows matched.
func (dao *NoteDAO) UpdateNote(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	res := dao.DB.WithContext(ctx).Model(&models.Note{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (dao *NoteDAO) DeleteNote(ctx context.Context, id uint) (int64, error) {
	res := dao.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Note{})
	return res.RowsAffected, res.Error
}
