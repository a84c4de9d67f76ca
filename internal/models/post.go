// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// MaxPostContentLength caps post bodies. The legacy application accepted
// unbounded content; the limit is enforced at the handler layer.
const MaxPostContentLength = 4096

// Post represents a short text update authored by a user. Posts are
// immutable once created and are never deleted.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}
