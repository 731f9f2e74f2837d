package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 全部通すvalidator。入力検証そのものはvalidatorパッケージ側で試験する
type allowAllValidator struct{}

func (allowAllValidator) ValidateRegister(ctx context.Context, in RegisterInput) error { return nil }
func (allowAllValidator) ValidateLogin(ctx context.Context, in LoginInput) error       { return nil }
func (allowAllValidator) ValidateChangePassword(ctx context.Context, oldPassword string, newPassword string) error {
	return nil
}
func (allowAllValidator) ValidateUpdateAccount(ctx context.Context, userID string, fullname string, email string) error {
	return nil
}

type authFixture struct {
	uc    *AuthUsecase
	users *testutil.MemoryUserRepo
	media *testutil.FakeMediaStorage
	clock *testutil.FixedClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := testutil.NewMemoryUserRepo()
	media := &testutil.FakeMediaStorage{BaseURL: "https://media.example.com"}
	//JWTの期限検証は実時間に対して行われるので、clockは現在時刻起点にする
	clock := testutil.NewFixedClock(time.Now().Truncate(time.Second))

	issuer, err := NewJWTTokenIssuer(issuerConfig())
	require.NoError(t, err)

	uc := NewAuthUsecase(
		users,
		allowAllValidator{},
		NewBcryptPasswordHasher(10),
		NewBcryptPasswordVerifier(),
		issuer,
		media,
		testutil.NewSeqIDGenerator("user"),
		clock,
	)

	return &authFixture{uc: uc, users: users, media: media, clock: clock}
}

func registerInput() RegisterInput {
	return RegisterInput{
		FullName:   "Alice Example",
		Username:   "Alice",
		Email:      "Alice@Example.com",
		Password:   "correct-horse-battery",
		AvatarPath: "/tmp/avatar.png",
	}
}

func Test_Register_CreatesSanitizedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	out, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	//username/emailは小文字に正規化される
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, "alice@example.com", out.Email)
	assert.Equal(t, "https://media.example.com/avatar.png", out.Avatar)
	assert.Empty(t, out.CoverImage)

	//保存されたのは平文ではなくbcryptハッシュ
	stored, err := f.users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", stored.Password)
	assert.True(t, NewBcryptPasswordVerifier().Verify("correct-horse-battery", stored.Password))

	//作成直後はセッションなし
	assert.Nil(t, stored.RefreshToken)
}

func Test_Register_MissingAvatarFails(t *testing.T) {
	f := newAuthFixture(t)

	in := registerInput()
	in.AvatarPath = ""

	_, err := f.uc.Register(context.Background(), in)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func Test_Register_UploadFailureFails(t *testing.T) {
	f := newAuthFixture(t)
	f.media.Err = errors.New("storage down")

	_, err := f.uc.Register(context.Background(), registerInput())
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func Test_Register_DuplicateFailsWithConflict(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	//同じusername/emailでもう一度
	_, err = f.uc.Register(ctx, registerInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func Test_Login_IssuesAndStoresTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	out, err := f.uc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse-battery"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token.AccessToken)
	assert.NotEmpty(t, out.Token.RefreshToken)
	assert.Equal(t, "alice", out.User.Username)

	//発行したrefreshがそのままユーザー行に保存されている
	stored := f.users.StoredRefreshToken(reg.ID)
	require.NotNil(t, stored)
	assert.Equal(t, out.Token.RefreshToken, *stored)
}

func Test_Login_ByEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	out, err := f.uc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.User.Username)
}

func Test_Login_UnknownUserIs404(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Login(context.Background(), LoginInput{Username: "nobody", Password: "whatever"})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func Test_Login_WrongPasswordIs401(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, LoginInput{Username: "alice", Password: "wrong"})
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func Test_Refresh_RotatesSingleUse(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	login, err := f.uc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse-battery"})
	require.NoError(t, err)

	first := login.Token.RefreshToken

	//1回目のローテーションは成功し、別のtokenが返る
	f.clock.Advance(time.Minute)
	pair, err := f.uc.Refresh(ctx, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, pair.RefreshToken)

	//保存値も新しいtokenで上書きされている
	stored := f.users.StoredRefreshToken(reg.ID)
	require.NotNil(t, stored)
	assert.Equal(t, pair.RefreshToken, *stored)

	//元のtokenをもう一度出すと「expired or used」
	_, err = f.uc.Refresh(ctx, first)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "refresh token expired or used", he.Message)

	//新しいtokenは引き続き使える
	f.clock.Advance(time.Minute)
	_, err = f.uc.Refresh(ctx, pair.RefreshToken)
	assert.NoError(t, err)
}

func Test_Refresh_EmptyOrGarbageIs401(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.uc.Refresh(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func Test_Logout_IsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse-battery"})
	require.NoError(t, err)
	require.NotNil(t, f.users.StoredRefreshToken(reg.ID))

	require.NoError(t, f.uc.Logout(ctx, reg.ID))
	assert.Nil(t, f.users.StoredRefreshToken(reg.ID))

	//2回目も失敗しない
	assert.NoError(t, f.uc.Logout(ctx, reg.ID))

	//存在しないユーザーでも失敗しない
	assert.NoError(t, f.uc.Logout(ctx, "ghost"))
}

func Test_Logout_InvalidatesRefresh(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	login, err := f.uc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse-battery"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, reg.ID))

	_, err = f.uc.Refresh(ctx, login.Token.RefreshToken)
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func Test_ChangePassword_ReplacesHash(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	err = f.uc.ChangePassword(ctx, reg.ID, "correct-horse-battery", "new-secret-password")
	require.NoError(t, err)

	stored, err := f.users.FindByID(ctx, reg.ID)
	require.NoError(t, err)

	verifier := NewBcryptPasswordVerifier()
	assert.True(t, verifier.Verify("new-secret-password", stored.Password))
	assert.False(t, verifier.Verify("correct-horse-battery", stored.Password))
}

func Test_ChangePassword_WrongOldIs401(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	err = f.uc.ChangePassword(ctx, reg.ID, "wrong-old", "new-secret-password")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func Test_ChangePassword_KeepsSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	login, err := f.uc.Login(ctx, LoginInput{Username: "alice", Password: "correct-horse-battery"})
	require.NoError(t, err)

	require.NoError(t, f.uc.ChangePassword(ctx, reg.ID, "correct-horse-battery", "new-secret-password"))

	//セッション状態（refresh token）は変わらない
	stored := f.users.StoredRefreshToken(reg.ID)
	require.NotNil(t, stored)
	assert.Equal(t, login.Token.RefreshToken, *stored)
}

func Test_Me_ReturnsSanitizedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	reg, err := f.uc.Register(ctx, registerInput())
	require.NoError(t, err)

	me, err := f.uc.Me(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)

	_, err = f.uc.Me(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// DTOにpassword/refreshTokenが紛れ込まないこと（構造で除外している）の回帰テスト
func Test_UserDTO_OmitsSecrets(t *testing.T) {
	tok := "some-refresh"
	u := &model.User{
		ID:           "u1",
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "$2a$10$hash",
		RefreshToken: &tok,
	}

	dto := toUserDTO(u)
	assert.Equal(t, "alice", dto.Username)
	assert.Equal(t, "alice@example.com", dto.Email)
}
