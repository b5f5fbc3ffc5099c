package constants

// アイテムのカテゴリ
const (
	CategoryFood      = "Food"
	CategoryHousehold = "Household"
	CategoryPersonal  = "Personal"
	CategoryOther     = "Other"
)

// アイテムの緊急度
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// ライブ更新イベントの種類
const (
	EventItemAdded    = "added"
	EventItemUpdated  = "updated"
	EventItemDeleted  = "deleted"
	EventItemsCleared = "cleared"
)

// エラーメッセージ
const (
	ErrUnexpected   = "Unexpected error"
	ErrInvalidInput = "Invalid input"
)

// IsValidCategory 書き込み時のみ検証する。既存行には他の値が残っていてもよい
func IsValidCategory(category string) bool {
	switch category {
	case CategoryFood, CategoryHousehold, CategoryPersonal, CategoryOther:
		return true
	}
	return false
}

// IsValidUrgency 書き込み時のみ検証する
func IsValidUrgency(urgency string) bool {
	switch urgency {
	case UrgencyLow, UrgencyNormal, UrgencyHigh:
		return true
	}
	return false
}
