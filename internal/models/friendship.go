// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FriendshipStatus represents the state of a friendship between two users.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates one user added the other and is
	// waiting for a reciprocal add.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates both users added each other.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
)

// Friendship holds the single row for a user pair. RequesterID is the user
// who added first; a reciprocal add flips Status from pending to accepted
// rather than inserting a second row, so every pair has exactly one
// authoritative state.
type Friendship struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"requester_id"`
	AddresseeID uint             `gorm:"not null;uniqueIndex:idx_friendship_users" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending';index:idx_friendships_status" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}
