package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/domain/model"
	"app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	uc    *AccountUsecase
	users *testutil.MemoryUserRepo
	media *testutil.FakeMediaStorage
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	users := testutil.NewMemoryUserRepo()
	media := &testutil.FakeMediaStorage{BaseURL: "https://media.example.com"}
	uc := NewAccountUsecase(users, allowAllValidator{}, media)

	require.NoError(t, users.Create(context.Background(), &model.User{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@example.com",
		FullName: "Alice Example",
		Password: "$2a$10$hash",
		Avatar:   "https://media.example.com/old.png",
	}))

	return &accountFixture{uc: uc, users: users, media: media}
}

func Test_UpdateAccount_ChangesFields(t *testing.T) {
	f := newAccountFixture(t)

	dto, err := f.uc.UpdateAccount(context.Background(), "u1", "Alice Renamed", "New@Example.com")
	require.NoError(t, err)

	assert.Equal(t, "Alice Renamed", dto.FullName)
	//emailは小文字に正規化
	assert.Equal(t, "new@example.com", dto.Email)
}

func Test_UpdateAccount_PartialUpdateKeepsOtherField(t *testing.T) {
	f := newAccountFixture(t)

	dto, err := f.uc.UpdateAccount(context.Background(), "u1", "Alice Renamed", "")
	require.NoError(t, err)

	assert.Equal(t, "Alice Renamed", dto.FullName)
	assert.Equal(t, "alice@example.com", dto.Email)
}

func Test_UpdateAccount_UnknownUserIsUnauthorized(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.uc.UpdateAccount(context.Background(), "ghost", "Name", "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func Test_UpdateAvatar_ReplacesURL(t *testing.T) {
	f := newAccountFixture(t)

	dto, err := f.uc.UpdateAvatar(context.Background(), "u1", "/tmp/new-avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/new-avatar.png", dto.Avatar)

	stored, err := f.users.FindByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/new-avatar.png", stored.Avatar)
}

func Test_UpdateAvatar_MissingFileIs400(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.uc.UpdateAvatar(context.Background(), "u1", "")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "avatar file is missing", he.Message)
}

func Test_UpdateAvatar_UploadFailureIs400(t *testing.T) {
	f := newAccountFixture(t)
	f.media.Err = errors.New("storage down")

	_, err := f.uc.UpdateAvatar(context.Background(), "u1", "/tmp/new-avatar.png")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//失敗時は既存URLを保持する
	stored, err2 := f.users.FindByID(context.Background(), "u1")
	require.NoError(t, err2)
	assert.Equal(t, "https://media.example.com/old.png", stored.Avatar)
}

func Test_UpdateCoverImage_ReplacesURL(t *testing.T) {
	f := newAccountFixture(t)

	dto, err := f.uc.UpdateCoverImage(context.Background(), "u1", "/tmp/new-cover.png")
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/new-cover.png", dto.CoverImage)
}
