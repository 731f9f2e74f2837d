package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 一意制約（username/email）違反
var ErrDuplicateUser = errors.New("username or email already exists")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成。username/email重複はErrDuplicateUser
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID string) (*model.User, error)
	//usernameからユーザーを1件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//usernameまたはemailの一致で1件取得する。
	FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error)
	//複数IDをまとめて取得する（視聴履歴のowner解決用）。
	FindByIDs(ctx context.Context, userIDs []string) ([]model.User, error)

	//refresh tokenの保存列を上書きする。nilでセッションなしに戻す
	UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error
	//パスワードハッシュのみ差し替える
	UpdatePassword(ctx context.Context, userID string, passwordHash string) error
	//fullname/emailのみ更新する（空文字は変更なし）
	UpdateProfile(ctx context.Context, userID string, fullname string, email string) (*model.User, error)
	//avatarのURLのみ更新する
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*model.User, error)
	//coverImageのURLのみ更新する
	UpdateCoverImage(ctx context.Context, userID string, coverURL string) (*model.User, error)
}
