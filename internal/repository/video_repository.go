package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrVideoNotFound = errors.New("video not found")

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByID(ctx context.Context, videoID string) (*model.Video, error)
	//複数IDをまとめて取得する（視聴履歴の解決用）。
	FindByIDs(ctx context.Context, videoIDs []string) ([]model.Video, error)
	//視聴回数を+1する
	IncrementViews(ctx context.Context, videoID string) error
}
