package models

import "time"

type Item struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FamilyID string `gorm:"not null;index" json:"familyId"`
	Name     string `gorm:"not null" json:"name"`
	Category string `gorm:"not null" json:"category"`
	Urgency  string `gorm:"not null;default:'normal'" json:"urgency"`
	Note     string `json:"note"`
	Done     bool   `gorm:"not null;default:false" json:"done"`
	// 作成時の表示名を保持する。ユーザーが改名しても過去のアイテムは変わらない
	AddedBy   string    `gorm:"not null" json:"addedBy"`
	AddedByID string    `gorm:"not null;index" json:"addedById"`
	CreatedAt time.Time `json:"createdAt"`
}
