package repositories

import (
	"famlist/models"

	"gorm.io/gorm"
)

type IFamilyRepository interface {
	Create(family models.Family) (*models.Family, error)
	FindByCode(code string) (*models.Family, error)
	CodeExists(code string) (bool, error)
}

type FamilyRepository struct {
	db *gorm.DB
}

func NewFamilyRepository(db *gorm.DB) IFamilyRepository {
	return &FamilyRepository{db: db}
}

func (r *FamilyRepository) Create(family models.Family) (*models.Family, error) {
	result := r.db.Create(&family)
	if result.Error != nil {
		return nil, result.Error
	}
	return &family, nil
}

func (r *FamilyRepository) FindByCode(code string) (*models.Family, error) {
	var family models.Family
	result := r.db.First(&family, "code = ?", code)
	if result.Error != nil {
		return nil, result.Error
	}
	return &family, nil
}

func (r *FamilyRepository) CodeExists(code string) (bool, error) {
	var count int64
	result := r.db.Model(&models.Family{}).Where("code = ?", code).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
