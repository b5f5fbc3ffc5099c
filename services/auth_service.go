package services

import (
	"errors"
	"famlist/models"
	"famlist/repositories"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type IAuthService interface {
	Signup(name string, email string, password string) (*models.User, error)
	Login(email string, password string) (*models.User, error)
	ResolveUser(userID string) (*models.User, error)
}

type AuthService struct {
	repository repositories.IUserRepository
}

func NewAuthService(repository repositories.IUserRepository) IAuthService {
	return &AuthService{repository: repository}
}

func (s *AuthService) Signup(name string, email string, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: string(hashedPassword),
	}
	if err := s.repository.CreateUser(user); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(email string, password string) (*models.User, error) {
	foundUser, err := s.repository.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnknownUser
	}

	return foundUser, nil
}

// ResolveUser リクエストごとに申告されたIDを検証する。セッションは保持しない
func (s *AuthService) ResolveUser(userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	user, err := s.repository.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

// メールアドレスは小文字で保存・照合する
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE constraint")
}
