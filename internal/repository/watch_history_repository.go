package repository

import (
	"app/internal/domain/model"
	"context"
)

// 視聴履歴の追記・取得
type WatchHistoryRepository interface {
	Append(ctx context.Context, entry *model.WatchHistoryEntry) error
	//記録された順（挿入順）で返す
	ListByUser(ctx context.Context, userID string) ([]model.WatchHistoryEntry, error)
}
