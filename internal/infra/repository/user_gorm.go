package repository

import (
	"app/internal/domain/model"
	domainrepo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) domainrepo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainrepo.ErrDuplicateUser
		}
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// usernameでユーザーを1件取得
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// usernameまたはemailの一致で1件取得
func (r *userGormRepository) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", username, email).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// 複数IDをまとめて取得（見つからないIDは単に含まれない）
func (r *userGormRepository) FindByIDs(ctx context.Context, userIDs []string) ([]model.User, error) {
	if len(userIDs) == 0 {
		return []model.User{}, nil
	}

	var users []model.User
	err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// refresh token列のみ上書き
func (r *userGormRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("refresh_token", refreshToken)

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// パスワードハッシュのみ差し替え
func (r *userGormRepository) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", passwordHash)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrUserNotFound
	}
	return nil
}

// fullname/emailのみ更新（空文字は変更なし）
// 列単位のUpdateにすることでpassword等を誤って触らない。
func (r *userGormRepository) UpdateProfile(ctx context.Context, userID string, fullname string, email string) (*model.User, error) {
	updates := map[string]interface{}{}
	if fullname != "" {
		updates["fullname"] = fullname
	}
	if email != "" {
		updates["email"] = email
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&model.User{}).
			Where("id = ?", userID).
			Updates(updates)

		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				return nil, domainrepo.ErrDuplicateUser
			}
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domainrepo.ErrUserNotFound
		}
	}

	return r.FindByID(ctx, userID)
}

// avatarのURLのみ更新
func (r *userGormRepository) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*model.User, error) {
	return r.updateColumn(ctx, userID, "avatar", avatarURL)
}

// coverImageのURLのみ更新
func (r *userGormRepository) UpdateCoverImage(ctx context.Context, userID string, coverURL string) (*model.User, error) {
	return r.updateColumn(ctx, userID, "cover_image", coverURL)
}

func (r *userGormRepository) updateColumn(ctx context.Context, userID string, column string, value string) (*model.User, error) {
	res := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update(column, value)

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domainrepo.ErrUserNotFound
	}

	return r.FindByID(ctx, userID)
}
