package model

import "time"

// MeetingStatus is the lifecycle state of a meeting.
type MeetingStatus int

const (
	MeetingStatusCancelled MeetingStatus = 0
	MeetingStatusPending   MeetingStatus = 1
	MeetingStatusCompleted MeetingStatus = 2
)

// Valid reports whether s is one of the three known statuses.
func (s MeetingStatus) Valid() bool {
	return s == MeetingStatusCancelled || s == MeetingStatusPending || s == MeetingStatusCompleted
}

// Meeting is a booking made against a slot, hosted by one user with zero
// or more guests. StartTime/EndTime optionally override the slot window.
type Meeting struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Description string        `json:"description" gorm:"type:text;not null"`
	Date        time.Time     `json:"date" gorm:"not null;index"`
	SlotID      uint          `json:"slotId" gorm:"not null;index"`
	HostID      uint          `json:"hostId" gorm:"not null;index"`
	Status      MeetingStatus `json:"status" gorm:"not null;default:1;index"`
	StartTime   *time.Time    `json:"startTime,omitempty"`
	EndTime     *time.Time    `json:"endTime,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`

	// Relations
	Slot   Slot           `json:"slot,omitempty" gorm:"foreignKey:SlotID"`
	Host   User           `json:"host,omitempty" gorm:"foreignKey:HostID"`
	Guests []MeetingGuest `json:"guests,omitempty" gorm:"foreignKey:MeetingID"`
}

// MeetingGuest links a guest user to a meeting. Guests are attached only
// at meeting creation; there is no add/remove-guest endpoint.
type MeetingGuest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	MeetingID uint      `json:"meetingId" gorm:"not null;index"`
	GuestID   uint      `json:"guestId" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Guest User `json:"guest,omitempty" gorm:"foreignKey:GuestID"`
}
