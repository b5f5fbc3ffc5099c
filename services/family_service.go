package services

import (
	"errors"
	"famlist/dto"
	"famlist/models"
	"famlist/repositories"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 招待コードの語彙。語 + 4桁の数字で "OAK-4821" のようなコードになる
var inviteWords = []string{
	"OAK", "MAPLE", "BIRCH", "CEDAR", "PINE", "FERN",
	"RIVER", "STONE", "CLOUD", "MEADOW", "HARBOR", "SUMMIT",
	"FOX", "WREN", "OTTER", "HERON",
}

type IFamilyService interface {
	Create(user *models.User, familyName string) (*dto.FamilyResponse, error)
	Join(user *models.User, code string, familyName string) (*dto.FamilyResponse, error)
	Leave(user *models.User) error
	Members(user *models.User) (*[]dto.MemberResponse, error)
}

type FamilyService struct {
	familyRepository repositories.IFamilyRepository
	userRepository   repositories.IUserRepository
	newCode          func() string
}

func NewFamilyService(familyRepository repositories.IFamilyRepository, userRepository repositories.IUserRepository) IFamilyService {
	return &FamilyService{
		familyRepository: familyRepository,
		userRepository:   userRepository,
		newCode:          randomInviteCode,
	}
}

func randomInviteCode() string {
	word := inviteWords[rand.Intn(len(inviteWords))]
	return fmt.Sprintf("%s-%04d", word, rand.Intn(10000))
}

// generateCode 既存コードと衝突しなくなるまでサンプリングし直す
func (s *FamilyService) generateCode() (string, error) {
	for {
		code := s.newCode()
		exists, err := s.familyRepository.CodeExists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

func (s *FamilyService) Create(user *models.User, familyName string) (*dto.FamilyResponse, error) {
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}
	familyName = strings.TrimSpace(familyName)
	if familyName == "" {
		return nil, fmt.Errorf("%w: family name is required", ErrValidation)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, err
	}

	family, err := s.familyRepository.Create(models.Family{
		ID:      uuid.NewString(),
		Name:    familyName,
		Code:    code,
		OwnerID: user.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}

	// ここで失敗するとファミリー行だけが残るが、どこからも参照されないので実害はない
	if err := s.userRepository.SetFamily(user.ID, &family.ID); err != nil {
		return nil, fmt.Errorf("failed to set family reference: %w", err)
	}
	user.FamilyID = &family.ID

	return &dto.FamilyResponse{ID: family.ID, Name: family.Name, Code: family.Code}, nil
}

func (s *FamilyService) Join(user *models.User, code string, familyName string) (*dto.FamilyResponse, error) {
	if user.FamilyID != nil {
		return nil, ErrAlreadyInFamily
	}

	family, err := s.familyRepository.FindByCode(normalizeCode(code))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFamilyNotFound
		}
		return nil, fmt.Errorf("failed to find family: %w", err)
	}

	// コードだけでは不十分。ファミリー名も合言葉として照合する
	if !strings.EqualFold(strings.TrimSpace(familyName), family.Name) {
		return nil, ErrNameMismatch
	}

	if err := s.userRepository.SetFamily(user.ID, &family.ID); err != nil {
		return nil, fmt.Errorf("failed to set family reference: %w", err)
	}
	user.FamilyID = &family.ID

	return &dto.FamilyResponse{ID: family.ID, Name: family.Name, Code: family.Code}, nil
}

// Leave ファミリー行やアイテムは消さない。コードがあれば再参加できる
func (s *FamilyService) Leave(user *models.User) error {
	if user.FamilyID == nil {
		return ErrNotInFamily
	}
	if err := s.userRepository.SetFamily(user.ID, nil); err != nil {
		return fmt.Errorf("failed to clear family reference: %w", err)
	}
	user.FamilyID = nil
	return nil
}

func (s *FamilyService) Members(user *models.User) (*[]dto.MemberResponse, error) {
	if user.FamilyID == nil {
		return nil, ErrNotInFamily
	}
	users, err := s.userRepository.FindByFamily(*user.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]dto.MemberResponse, 0, len(*users))
	for _, u := range *users {
		members = append(members, dto.MemberResponse{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return &members, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
