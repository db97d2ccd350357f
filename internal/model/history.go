package model

import "time"

// History is an append-only audit record of a state-changing operation.
// Rows are never updated or deleted.
type History struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Operation  string    `json:"operation" gorm:"size:50;not null;index"`
	EntityType string    `json:"entityType" gorm:"size:50;not null;index"`
	Details    string    `json:"details" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt"`
}
