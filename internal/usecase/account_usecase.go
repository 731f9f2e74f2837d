package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/repository"
)

// プロフィール項目とメディアの更新
type AccountUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	media     MediaStorage
}

// DI
func NewAccountUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	media MediaStorage,
) *AccountUsecase {
	return &AccountUsecase{
		users:     users,
		validator: validator,
		media:     media,
	}
}

// fullname/emailの更新。どちらかは必須
func (u *AccountUsecase) UpdateAccount(ctx context.Context, userID string, fullname string, email string) (*UserDTO, error) {
	fullname = strings.TrimSpace(fullname)
	email = normalize(email)

	if err := u.validator.ValidateUpdateAccount(ctx, userID, fullname, email); err != nil {
		return nil, err
	}

	user, err := u.users.UpdateProfile(ctx, userID, fullname, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrConflict
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// avatar差し替え。アップロード成功後にURLのみ更新する
func (u *AccountUsecase) UpdateAvatar(ctx context.Context, userID string, localPath string) (*UserDTO, error) {
	if localPath == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "avatar file is missing")
	}

	url, err := u.media.Upload(ctx, localPath)
	if err != nil || url == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading avatar")
	}

	user, err := u.users.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// coverImage差し替え
func (u *AccountUsecase) UpdateCoverImage(ctx context.Context, userID string, localPath string) (*UserDTO, error) {
	if localPath == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "cover image file is missing")
	}

	url, err := u.media.Upload(ctx, localPath)
	if err != nil || url == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "error while uploading cover image")
	}

	user, err := u.users.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, ErrInternal
	}

	dto := toUserDTO(user)
	return &dto, nil
}
