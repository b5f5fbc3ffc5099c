package services

import "errors"

// サービス層のエラー。コントローラがerrors.IsでHTTPステータスに変換する
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnknownUser     = errors.New("unknown user")
	ErrValidation      = errors.New("invalid input")
	ErrEmailTaken      = errors.New("email already exists")
	ErrAlreadyInFamily = errors.New("user already belongs to a family")
	ErrNotInFamily     = errors.New("user does not belong to a family")
	ErrFamilyNotFound  = errors.New("family not found")
	ErrNameMismatch    = errors.New("family name does not match")
	ErrItemNotFound    = errors.New("item not found")
	ErrForbidden       = errors.New("item belongs to another family")
)
