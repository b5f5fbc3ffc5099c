package services

import (
	"errors"
	"famlist/constants"
	"famlist/dto"
	"famlist/models"
	"famlist/repositories"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IEventPublisher broadcast.Hubが実装する
type IEventPublisher interface {
	Publish(familyID string, kind string)
}

type IItemService interface {
	FindAll(user *models.User) (*[]models.Item, error)
	Create(user *models.User, input dto.CreateItemInput) (*models.Item, error)
	Update(user *models.User, itemID string, input dto.UpdateItemInput) (*models.Item, error)
	Delete(user *models.User, itemID string) error
	DeleteAllDone(user *models.User) error
}

type ItemService struct {
	repository repositories.IItemRepository
	publisher  IEventPublisher
}

func NewItemService(repository repositories.IItemRepository, publisher IEventPublisher) IItemService {
	return &ItemService{repository: repository, publisher: publisher}
}

// FindAll 未所属はエラーではなく空リストを返す
func (s *ItemService) FindAll(user *models.User) (*[]models.Item, error) {
	if user.FamilyID == nil {
		return &[]models.Item{}, nil
	}
	return s.repository.FindByFamily(*user.FamilyID)
}

func (s *ItemService) Create(user *models.User, input dto.CreateItemInput) (*models.Item, error) {
	if user.FamilyID == nil {
		return nil, ErrNotInFamily
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !constants.IsValidCategory(input.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, input.Category)
	}

	urgency := constants.UrgencyNormal
	if input.Urgency != nil {
		if !constants.IsValidUrgency(*input.Urgency) {
			return nil, fmt.Errorf("%w: unknown urgency %q", ErrValidation, *input.Urgency)
		}
		urgency = *input.Urgency
	}
	note := ""
	if input.Note != nil {
		note = *input.Note
	}

	newItem := models.Item{
		ID:        uuid.NewString(),
		FamilyID:  *user.FamilyID,
		Name:      input.Name,
		Category:  input.Category,
		Urgency:   urgency,
		Note:      note,
		Done:      false,
		AddedBy:   user.Name,
		AddedByID: user.ID,
	}
	created, err := s.repository.Create(newItem)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(*user.FamilyID, constants.EventItemAdded)
	return created, nil
}

// findOwned NotFoundとForbiddenを区別する。存在の有無が漏れるのは既知の仕様
func (s *ItemService) findOwned(user *models.User, itemID string) (*models.Item, error) {
	targetItem, err := s.repository.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if user.FamilyID == nil || targetItem.FamilyID != *user.FamilyID {
		return nil, ErrForbidden
	}
	return targetItem, nil
}

func (s *ItemService) Update(user *models.User, itemID string, input dto.UpdateItemInput) (*models.Item, error) {
	targetItem, err := s.findOwned(user, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		if !constants.IsValidCategory(*input.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *input.Category)
		}
		updates["category"] = *input.Category
	}
	if input.Urgency != nil {
		if !constants.IsValidUrgency(*input.Urgency) {
			return nil, fmt.Errorf("%w: unknown urgency %q", ErrValidation, *input.Urgency)
		}
		updates["urgency"] = *input.Urgency
	}
	if input.Note != nil {
		updates["note"] = *input.Note
	}
	if input.Done != nil {
		updates["done"] = *input.Done
	}

	// 全フィールド省略なら現状をそのまま返す
	if len(updates) == 0 {
		return targetItem, nil
	}

	updatedItem, err := s.repository.Update(itemID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	s.publisher.Publish(*user.FamilyID, constants.EventItemUpdated)
	return updatedItem, nil
}

func (s *ItemService) Delete(user *models.User, itemID string) error {
	if _, err := s.findOwned(user, itemID); err != nil {
		return err
	}

	if err := s.repository.Delete(itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}

	s.publisher.Publish(*user.FamilyID, constants.EventItemDeleted)
	return nil
}

// DeleteAllDone 未所属なら何もせず成功。0件削除でも通知は送る
func (s *ItemService) DeleteAllDone(user *models.User) error {
	if user.FamilyID == nil {
		return nil
	}
	if err := s.repository.DeleteDone(*user.FamilyID); err != nil {
		return err
	}
	s.publisher.Publish(*user.FamilyID, constants.EventItemsCleared)
	return nil
}
