package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/repository"

	"app/internal/domain/model"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, in RegisterInput) error
	ValidateLogin(ctx context.Context, in LoginInput) error
	ValidateChangePassword(ctx context.Context, oldPassword string, newPassword string) error
	ValidateUpdateAccount(ctx context.Context, userID string, fullname string, email string) error
}

// ローカルファイルを永続URLへ変換する外部メディア基盤の約束。
// 失敗の内訳は見えない（opaque）。
type MediaStorage interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// 会員登録の入力。Avatar/CoverImagePathはhandlerが一時保存したローカルパス
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string
}

// ログインの入力。usernameかemailのどちらかがあればよい
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// handlerがJSONにして返す。refresh cookieの値もここから取る
type LoginResult struct {
	User  UserDTO   `json:"user"`
	Token TokenPair `json:"token"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	validator AuthValidator
	hasher    PasswordHasher
	verifier  PasswordVerifier
	issuer    TokenIssuer
	media     MediaStorage
	idGen     IDGenerator
	clock     Clock
}

// DI
func NewAuthUsecase(
	users repository.UserRepository,
	validator AuthValidator,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer TokenIssuer,
	media MediaStorage,
	idGen IDGenerator,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		validator: validator,
		hasher:    hasher,
		verifier:  verifier,
		issuer:    issuer,
		media:     media,
		idGen:     idGen,
		clock:     clock,
	}
}

// 会員登録。avatarは必須、coverImageは任意
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	//入力検証（validatorに寄せる。username/email重複もここで弾く）
	if err := u.validator.ValidateRegister(ctx, in); err != nil {
		return nil, err
	}

	//avatarは必須
	if in.AvatarPath == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "avatar is required")
	}

	//avatarアップロード。失敗も「必須メディアなし」として返す
	avatarURL, err := u.media.Upload(ctx, in.AvatarPath)
	if err != nil || avatarURL == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "avatar is required")
	}

	//coverImageはbest-effort。失敗したら空のまま作成する
	coverURL := ""
	if in.CoverImagePath != "" {
		if url, err := u.media.Upload(ctx, in.CoverImagePath); err == nil {
			coverURL = url
		}
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, ErrInternal
	}

	now := u.clock.Now()

	user := &model.User{
		ID:         u.idGen.NewID(),
		Username:   normalize(in.Username),
		Email:      normalize(in.Email),
		FullName:   strings.TrimSpace(in.FullName),
		Password:   pwHash,
		Avatar:     avatarURL,
		CoverImage: coverURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrConflict
		}
		return nil, ErrInternal
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// ログイン。成功でaccess+refreshを発行し、refreshはユーザー行へ保存する
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := u.validator.ValidateLogin(ctx, in); err != nil {
		return nil, err
	}

	//usernameまたはemailでユーザー取得
	user, err := u.users.FindByUsernameOrEmail(ctx, normalize(in.Username), normalize(in.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "user does not exist")
		}
		return nil, ErrInternal
	}

	//パスワード照合（bcrypt）
	if ok := u.verifier.Verify(in.Password, user.Password); !ok {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid user credentials")
	}

	pair, err := u.issueAndStorePair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:  toUserDTO(user),
		Token: *pair,
	}, nil
}

// refresh tokenのローテーション。
// 保存値とのbyte一致が唯一の有効性判定。旧tokenは上書きで即失効する。
func (u *AuthUsecase) Refresh(ctx context.Context, incoming string) (*TokenPair, error) {
	if incoming == "" {
		return nil, ErrUnauthorized
	}

	//署名・期限の検証とsubの取り出し
	userID, err := u.issuer.ParseRefreshToken(incoming)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	//保存値との一致＝まだ使われていない最新のtokenであること
	if user.RefreshToken == nil || *user.RefreshToken != incoming {
		return nil, NewHTTPError(http.StatusUnauthorized, "refresh token expired or used")
	}

	return u.issueAndStorePair(ctx, user)
}

// ログアウト。保存されたrefresh tokenを無条件にクリアする（冪等）
func (u *AuthUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil
		}
		return ErrInternal
	}
	return nil
}

// パスワード変更。セッション状態（refresh token）は変えない
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	if err := u.validator.ValidateChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUnauthorized
	}

	if ok := u.verifier.Verify(oldPassword, user.Password); !ok {
		return NewHTTPError(http.StatusUnauthorized, "invalid old password")
	}

	//新しい平文をハッシュ化して差し替え
	pwHash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return ErrInternal
	}

	if err := u.users.UpdatePassword(ctx, userID, pwHash); err != nil {
		return ErrInternal
	}
	return nil
}

// 現在のユーザーを取得
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	dto := toUserDTO(user)
	return &dto, nil
}

// access+refreshを発行してrefreshをユーザー行へ保存する。
// 上書きなので以前発行したrefreshは全て無効になる。
func (u *AuthUsecase) issueAndStorePair(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := u.clock.Now()

	accessToken, err := u.issuer.IssueAccessToken(user, now)
	if err != nil {
		return nil, ErrInternal
	}

	refreshToken, err := u.issuer.IssueRefreshToken(user.ID, now)
	if err != nil {
		return nil, ErrInternal
	}

	if err := u.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, ErrInternal
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// username/emailは小文字・trimで正規化して扱う
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
