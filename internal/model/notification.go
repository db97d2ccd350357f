package model

import "time"

// Notification is an in-app message created as a side effect of meeting
// creation or status changes. Rows are append-only.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
}
