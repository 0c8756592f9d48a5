// mynotes/sources/psql/models/note.go
package models

import (
	"time"
)

// FormatCard is the only display format currently supported. The column
// exists so future formats can ship without a migration.
const FormatCard = "card"

type Note struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Format      string    `json:"format" gorm:"type:varchar(50);not null;default:card"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime;index"`
}

func (Note) TableName() string {
	return "notes"
}

// AllowedFormat reports whether f belongs to the supported format set.
func AllowedFormat(f string) bool {
	return f == FormatCard
}
