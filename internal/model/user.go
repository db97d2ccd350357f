package model

import "time"

// User represents a registered user who exposes availability slots and
// hosts or joins meetings.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Timezone     string    `json:"timezone,omitempty" gorm:"size:64"`
	Profession   string    `json:"profession,omitempty" gorm:"size:255"`
	Role         string    `json:"role,omitempty" gorm:"size:50;default:'user'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Relations
	Slots []Slot `json:"slots,omitempty" gorm:"foreignKey:UserID"`
}
