package models

import "time"

type Family struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	OwnerID   string    `gorm:"not null;index" json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
