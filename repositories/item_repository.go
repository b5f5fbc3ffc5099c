package repositories

import (
	"famlist/models"

	"gorm.io/gorm"
)

type IItemRepository interface {
	FindByFamily(familyID string) (*[]models.Item, error)
	FindByID(itemID string) (*models.Item, error)
	Create(newItem models.Item) (*models.Item, error)
	Update(itemID string, updates map[string]interface{}) (*models.Item, error)
	Delete(itemID string) error
	DeleteDone(familyID string) error
}

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) IItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) FindByFamily(familyID string) (*[]models.Item, error) {
	var items []models.Item
	result := r.db.Where("family_id = ?", familyID).Order("created_at desc").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}
	return &items, nil
}

func (r *ItemRepository) FindByID(itemID string) (*models.Item, error) {
	var item models.Item
	result := r.db.First(&item, "id = ?", itemID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &item, nil
}

func (r *ItemRepository) Create(newItem models.Item) (*models.Item, error) {
	result := r.db.Create(&newItem)
	if result.Error != nil {
		return nil, result.Error
	}
	return &newItem, nil
}

// Update mapで更新する。構造体だとゼロ値（done=falseなど)が無視されるため
func (r *ItemRepository) Update(itemID string, updates map[string]interface{}) (*models.Item, error) {
	result := r.db.Model(&models.Item{}).
		Where("id = ?", itemID).
		Updates(updates)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var updatedItem models.Item
	if err := r.db.First(&updatedItem, "id = ?", itemID).Error; err != nil {
		return nil, err
	}

	return &updatedItem, nil
}

func (r *ItemRepository) Delete(itemID string) error {
	result := r.db.Delete(&models.Item{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ItemRepository) DeleteDone(familyID string) error {
	result := r.db.Where("family_id = ? AND done = ?", familyID, true).Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	return nil
}
