// Package testutilはDBや外部ストレージなしでusecase/handlerを動かすための
// インメモリ実装を提供する。テスト専用。
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
)

// ---------------------------------
// UserRepository
// ---------------------------------

type MemoryUserRepo struct {
	mu    sync.Mutex
	users map[string]model.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[string]model.User{}}
}

func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}

	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *MemoryUserRepo) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *MemoryUserRepo) FindByIDs(ctx context.Context, userIDs []string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.User{}
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryUserRepo) UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	if refreshToken != nil {
		v := *refreshToken
		u.RefreshToken = &v
	} else {
		u.RefreshToken = nil
	}
	r.users[userID] = u
	return nil
}

func (r *MemoryUserRepo) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Password = passwordHash
	r.users[userID] = u
	return nil
}

func (r *MemoryUserRepo) UpdateProfile(ctx context.Context, userID string, fullname string, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if fullname != "" {
		u.FullName = fullname
	}
	if email != "" {
		for id, other := range r.users {
			if id != userID && other.Email == email {
				return nil, repository.ErrDuplicateUser
			}
		}
		u.Email = email
	}
	r.users[userID] = u
	return &u, nil
}

func (r *MemoryUserRepo) UpdateAvatar(ctx context.Context, userID string, avatarURL string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.Avatar = avatarURL
	r.users[userID] = u
	return &u, nil
}

func (r *MemoryUserRepo) UpdateCoverImage(ctx context.Context, userID string, coverURL string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.CoverImage = coverURL
	r.users[userID] = u
	return &u, nil
}

// 検証用。保存されているrefresh tokenを覗く
func (r *MemoryUserRepo) StoredRefreshToken(userID string) *string {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	return u.RefreshToken
}

// ---------------------------------
// SubscriptionRepository
// ---------------------------------

type MemorySubscriptionRepo struct {
	mu   sync.Mutex
	subs []model.Subscription
}

func NewMemorySubscriptionRepo() *MemorySubscriptionRepo {
	return &MemorySubscriptionRepo{}
}

func (r *MemorySubscriptionRepo) Create(ctx context.Context, sub *model.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, *sub)
	return nil
}

func (r *MemorySubscriptionRepo) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.subs {
		if s.ChannelID == channelID {
			n++
		}
	}
	return n, nil
}

func (r *MemorySubscriptionRepo) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, s := range r.subs {
		if s.SubscriberID == subscriberID {
			n++
		}
	}
	return n, nil
}

func (r *MemorySubscriptionRepo) Exists(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.SubscriberID == subscriberID && s.ChannelID == channelID {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------
// VideoRepository
// ---------------------------------

type MemoryVideoRepo struct {
	mu     sync.Mutex
	videos map[string]model.Video
}

func NewMemoryVideoRepo() *MemoryVideoRepo {
	return &MemoryVideoRepo{videos: map[string]model.Video{}}
}

func (r *MemoryVideoRepo) Create(ctx context.Context, video *model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.videos[video.ID] = *video
	return nil
}

func (r *MemoryVideoRepo) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[videoID]
	if !ok {
		return nil, repository.ErrVideoNotFound
	}
	return &v, nil
}

func (r *MemoryVideoRepo) FindByIDs(ctx context.Context, videoIDs []string) ([]model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.Video{}
	for _, id := range videoIDs {
		if v, ok := r.videos[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *MemoryVideoRepo) IncrementViews(ctx context.Context, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[videoID]
	if !ok {
		return repository.ErrVideoNotFound
	}
	v.Views++
	r.videos[videoID] = v
	return nil
}

// ---------------------------------
// WatchHistoryRepository
// ---------------------------------

type MemoryWatchHistoryRepo struct {
	mu      sync.Mutex
	entries []model.WatchHistoryEntry
	nextID  int64
}

func NewMemoryWatchHistoryRepo() *MemoryWatchHistoryRepo {
	return &MemoryWatchHistoryRepo{}
}

func (r *MemoryWatchHistoryRepo) Append(ctx context.Context, entry *model.WatchHistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryWatchHistoryRepo) ListByUser(ctx context.Context, userID string) ([]model.WatchHistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []model.WatchHistoryEntry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------------
// Clock / IDGenerator / MediaStorage
// ---------------------------------

// 固定時刻のclock。Advanceで進める
type FixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{t: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// 連番のIDジェネレータ
type SeqIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func NewSeqIDGenerator(prefix string) *SeqIDGenerator {
	return &SeqIDGenerator{prefix: prefix}
}

func (g *SeqIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// メディアの偽物。Errを入れるとアップロード失敗を再現する
type FakeMediaStorage struct {
	BaseURL string
	Err     error
}

func (f *FakeMediaStorage) Upload(ctx context.Context, localPath string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.BaseURL + "/" + filepath.Base(localPath), nil
}
