package models

import (
	"time"
)

// Notification is an in-app message owned by a single user. Created by
// system events (moderation outcomes, report resolutions); only the read
// flag is mutable afterwards.
type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}
