package model

import "time"

// Slot is a recurring availability window a user exposes for booking:
// a time-of-day range (StartTime..EndTime) within a calendar range
// (StartDate..EndDate). Active slots of one user must not overlap in
// either dimension; inactive slots are exempt.
type Slot struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	StartTime   time.Time `json:"startTime" gorm:"not null"`
	EndTime     time.Time `json:"endTime" gorm:"not null"`
	StartDate   time.Time `json:"startDate" gorm:"not null;index"`
	EndDate     time.Time `json:"endDate" gorm:"not null"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	Active      bool      `json:"active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	User     User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Meetings []Meeting `json:"meetings,omitempty" gorm:"foreignKey:SlotID"`
}
