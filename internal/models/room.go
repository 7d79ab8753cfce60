package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room statuses. The column is a plain string, these are the two values the
// matchmaking flow writes.
const (
	StatusWaiting  = "waiting"
	StatusChatting = "chatting"
)

// Room represents a matchmaking unit: either an open slot waiting for a
// second participant or an active paired session.
type Room struct {
	// RoomID is the unique identifier for the room (UUID). It doubles as the
	// RTC channel name the session token is scoped to.
	RoomID string `gorm:"primaryKey" json:"id"`
	// Status is "waiting" while the room can be matched and "chatting" once
	// it has been handed out.
	Status string `json:"status"`
	// CreatedAt is the timestamp when the room was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp of the last status transition.
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate — це хук GORM, який викликається перед створенням запису.
// Він генерує новий UUID для кімнати, якщо RoomID ще не встановлено.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.RoomID == "" {
		r.RoomID = uuid.New().String()
	}
	return
}
