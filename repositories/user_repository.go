package repositories

import (
	"famlist/models"

	"gorm.io/gorm"
)

type IUserRepository interface {
	CreateUser(user models.User) error
	FindByID(userID string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByFamily(familyID string) (*[]models.User, error)
	SetFamily(userID string, familyID *string) error
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user models.User) error {
	result := r.db.Create(&user)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *UserRepository) FindByID(userID string) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "id = ?", userID)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, "email = ?", email)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (r *UserRepository) FindByFamily(familyID string) (*[]models.User, error) {
	var users []models.User
	result := r.db.Where("family_id = ?", familyID).Order("created_at asc").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return &users, nil
}

// SetFamily familyIDがnilの場合は所属を解除する
func (r *UserRepository) SetFamily(userID string, familyID *string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("family_id", familyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
