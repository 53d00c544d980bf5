package validator

import (
	"errors"
	"regexp"
	"strings"

	"app/internal/domain/model"
	"app/internal/usecase"
)

var (
	// 入力が不正
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username too long")
	ErrUsernameInvalid  = errors.New("username has invalid characters")
	ErrPasswordTooShort = errors.New("password too short")
	ErrInvalidRole      = errors.New("invalid role")
)

type userValidator struct{}

// Usecaseは interface を依存注入
func NewUserValidator() usecase.UserValidator {
	return &userValidator{}
}

// ユーザー作成の入力を検証
func (v *userValidator) ValidateCreate(username string, password string, role string) error {
	if err := validateUsername(username); err != nil {
		return err
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	switch model.Role(role) {
	case model.RoleAdmin, model.RoleStaff, model.RoleUser:
		// OK
	default:
		return ErrInvalidRole
	}

	return nil
}

// ユーザー更新の入力を検証（どちらも任意）
func (v *userValidator) ValidateUpdate(username *string, password *string) error {
	if username != nil {
		if err := validateUsername(*username); err != nil {
			return err
		}
	}
	if password != nil && len(*password) < 8 {
		return ErrPasswordTooShort
	}
	return nil
}

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func validateUsername(username string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" {
		return ErrUsernameRequired
	}
	if len(username) > 50 {
		return ErrUsernameTooLong
	}
	if !usernameRe.MatchString(username) {
		return ErrUsernameInvalid
	}
	return nil
}
