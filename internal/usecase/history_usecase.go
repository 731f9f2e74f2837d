package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

// 視聴履歴の読み取りモデル組み立てと追記
type HistoryUsecase struct {
	users   repository.UserRepository
	videos  repository.VideoRepository
	history repository.WatchHistoryRepository
	clock   Clock
}

// DI
func NewHistoryUsecase(
	users repository.UserRepository,
	videos repository.VideoRepository,
	history repository.WatchHistoryRepository,
	clock Clock,
) *HistoryUsecase {
	return &HistoryUsecase{
		users:   users,
		videos:  videos,
		history: history,
		clock:   clock,
	}
}

// Listは視聴履歴を記録順のまま動画＋owner要約へ解決する。
// 履歴が空なら空リスト（エラーではない）。
func (u *HistoryUsecase) List(ctx context.Context, viewerID string) ([]WatchedVideoDTO, error) {
	//viewer自体が存在しなければ404
	if _, err := u.users.FindByID(ctx, viewerID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "watch history does not exist")
		}
		return nil, ErrInternal
	}

	entries, err := u.history.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(entries) == 0 {
		return []WatchedVideoDTO{}, nil
	}

	//動画をまとめて解決
	videoIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		videoIDs = append(videoIDs, e.VideoID)
	}

	videos, err := u.videos.FindByIDs(ctx, videoIDs)
	if err != nil {
		return nil, ErrInternal
	}

	videoByID := make(map[string]model.Video, len(videos))
	for _, v := range videos {
		videoByID[v.ID] = v
	}

	//ownerをまとめて解決
	ownerIDs := make([]string, 0, len(videos))
	seen := map[string]struct{}{}
	for _, v := range videos {
		if _, ok := seen[v.OwnerID]; ok {
			continue
		}
		seen[v.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, v.OwnerID)
	}

	owners, err := u.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, ErrInternal
	}

	ownerByID := make(map[string]model.User, len(owners))
	for _, o := range owners {
		ownerByID[o.ID] = o
	}

	//履歴の記録順を保って組み立てる
	out := make([]WatchedVideoDTO, 0, len(entries))
	for _, e := range entries {
		v, ok := videoByID[e.VideoID]
		if !ok {
			//動画が消えていたら履歴からは黙って落とす
			continue
		}

		owner := ownerByID[v.OwnerID]

		out = append(out, WatchedVideoDTO{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			VideoFile:   v.VideoFile,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			Owner: OwnerDTO{
				FullName: owner.FullName,
				Username: owner.Username,
				Avatar:   owner.Avatar,
			},
			WatchedAt: e.CreatedAt,
		})
	}

	return out, nil
}

// Watchは視聴履歴へ追記して視聴回数を+1する
func (u *HistoryUsecase) Watch(ctx context.Context, viewerID string, videoID string) error {
	video, err := u.videos.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, repository.ErrVideoNotFound) {
			return NewHTTPError(http.StatusNotFound, "video does not exist")
		}
		return ErrInternal
	}

	entry := &model.WatchHistoryEntry{
		UserID:    viewerID,
		VideoID:   video.ID,
		CreatedAt: u.clock.Now(),
	}

	if err := u.history.Append(ctx, entry); err != nil {
		return ErrInternal
	}

	//視聴回数はbest-effortではなく通常の更新として扱う
	if err := u.videos.IncrementViews(ctx, video.ID); err != nil {
		return ErrInternal
	}
	return nil
}
