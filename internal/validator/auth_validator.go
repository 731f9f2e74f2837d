package validator

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/repository"
	"app/internal/usecase"

	playground "github.com/go-playground/validator/v10"
)

type authValidator struct {
	users    repository.UserRepository
	validate *playground.Validate
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{
		users:    users,
		validate: playground.New(),
	}
}

// 会員登録のフィールド制約
type registerFields struct {
	FullName string `validate:"required"`
	Username string `validate:"required,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// サインアップの入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, in usecase.RegisterInput) error {
	fields := registerFields{
		FullName: strings.TrimSpace(in.FullName),
		Username: strings.ToLower(strings.TrimSpace(in.Username)),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
	}

	if err := v.validate.Struct(fields); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "all fields are required")
	}

	// username/email重複チェック（DBが必要）
	existing, err := v.users.FindByUsernameOrEmail(ctx, fields.Username, fields.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return usecase.ErrInternal
	}
	if existing != nil {
		return usecase.NewHTTPError(http.StatusConflict, "username or email already exists")
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, in usecase.LoginInput) error {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)

	//usernameかemailのどちらかは必須
	if username == "" && email == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "username or email is required")
	}

	if email != "" {
		if err := v.validate.Var(email, "email"); err != nil {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid email format")
		}
	}

	if in.Password == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "password is required")
	}

	return nil
}

// パスワード変更の入力を検証
func (v *authValidator) ValidateChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "old and new password are required")
	}

	if err := v.validate.Var(newPassword, "min=8"); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "new password is too short")
	}

	return nil
}

// アカウント更新の入力を検証
func (v *authValidator) ValidateUpdateAccount(ctx context.Context, userID string, fullname string, email string) error {
	//どちらかは必須
	if fullname == "" && email == "" {
		return usecase.NewHTTPError(http.StatusBadRequest, "fullname or email is required")
	}

	if email != "" {
		if err := v.validate.Var(email, "email"); err != nil {
			return usecase.NewHTTPError(http.StatusBadRequest, "invalid email format")
		}

		//別ユーザーが使っているemailは不可
		existing, err := v.users.FindByUsernameOrEmail(ctx, "", email)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return usecase.ErrInternal
		}
		if existing != nil && existing.ID != userID {
			return usecase.NewHTTPError(http.StatusConflict, "email already exists")
		}
	}

	return nil
}
