package usecase

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type historyFixture struct {
	uc     *HistoryUsecase
	users  *testutil.MemoryUserRepo
	videos *testutil.MemoryVideoRepo
	clock  *testutil.FixedClock
}

func newHistoryFixture(t *testing.T) *historyFixture {
	t.Helper()

	users := testutil.NewMemoryUserRepo()
	videos := testutil.NewMemoryVideoRepo()
	history := testutil.NewMemoryWatchHistoryRepo()
	clock := testutil.NewFixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	uc := NewHistoryUsecase(users, videos, history, clock)

	return &historyFixture{uc: uc, users: users, videos: videos, clock: clock}
}

func seedVideo(t *testing.T, videos *testutil.MemoryVideoRepo, id string, ownerID string, title string) {
	t.Helper()
	require.NoError(t, videos.Create(context.Background(), &model.Video{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Description: "desc " + title,
		VideoFile:   "https://media.example.com/" + id + ".mp4",
		Thumbnail:   "https://media.example.com/" + id + ".jpg",
		Duration:    90,
	}))
}

func Test_HistoryList_EmptyIsEmptySliceNotError(t *testing.T) {
	f := newHistoryFixture(t)
	seedUser(t, f.users, "u1", "alice")

	got, err := f.uc.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func Test_HistoryList_UnknownViewerIs404(t *testing.T) {
	f := newHistoryFixture(t)

	_, err := f.uc.List(context.Background(), "ghost")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "watch history does not exist", he.Message)
}

func Test_HistoryList_PreservesWatchOrder(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	seedUser(t, f.users, "u1", "alice")
	seedUser(t, f.users, "u2", "bob")
	seedVideo(t, f.videos, "v1", "u2", "first")
	seedVideo(t, f.videos, "v2", "u2", "second")
	seedVideo(t, f.videos, "v3", "u2", "third")

	//v2, v1, v3の順で見る
	require.NoError(t, f.uc.Watch(ctx, "u1", "v2"))
	f.clock.Advance(time.Minute)
	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))
	f.clock.Advance(time.Minute)
	require.NoError(t, f.uc.Watch(ctx, "u1", "v3"))

	got, err := f.uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "v2", got[0].ID)
	assert.Equal(t, "v1", got[1].ID)
	assert.Equal(t, "v3", got[2].ID)

	//WatchedAtは記録時刻
	assert.True(t, got[0].WatchedAt.Before(got[1].WatchedAt))
}

func Test_HistoryList_ResolvesOwnerSummary(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	seedUser(t, f.users, "u1", "alice")
	owner := seedUser(t, f.users, "u2", "bob")
	seedVideo(t, f.videos, "v1", "u2", "first")

	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))

	got, err := f.uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, owner.Username, got[0].Owner.Username)
	assert.Equal(t, owner.FullName, got[0].Owner.FullName)
	assert.Equal(t, owner.Avatar, got[0].Owner.Avatar)
}

func Test_HistoryList_RepeatWatchAppearsTwice(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	seedUser(t, f.users, "u1", "alice")
	seedUser(t, f.users, "u2", "bob")
	seedVideo(t, f.videos, "v1", "u2", "first")

	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))
	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))

	got, err := f.uc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func Test_Watch_IncrementsViews(t *testing.T) {
	f := newHistoryFixture(t)
	ctx := context.Background()

	seedUser(t, f.users, "u1", "alice")
	seedUser(t, f.users, "u2", "bob")
	seedVideo(t, f.videos, "v1", "u2", "first")

	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))
	require.NoError(t, f.uc.Watch(ctx, "u1", "v1"))

	v, err := f.videos.FindByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Views)
}

func Test_Watch_UnknownVideoIs404(t *testing.T) {
	f := newHistoryFixture(t)
	seedUser(t, f.users, "u1", "alice")

	err := f.uc.Watch(context.Background(), "u1", "ghost")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	assert.Equal(t, "video does not exist", he.Message)
}
