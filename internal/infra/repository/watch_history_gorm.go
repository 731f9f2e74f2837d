package repository

import (
	"app/internal/domain/model"
	domainrepo "app/internal/repository"
	"context"

	"gorm.io/gorm"
)

type watchHistoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewWatchHistoryGormRepository(db *gorm.DB) domainrepo.WatchHistoryRepository {
	return &watchHistoryGormRepository{db: db}
}

func (r *watchHistoryGormRepository) Append(ctx context.Context, entry *model.WatchHistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// 記録順＝IDの昇順で返す
func (r *watchHistoryGormRepository) ListByUser(ctx context.Context, userID string) ([]model.WatchHistoryEntry, error) {
	var entries []model.WatchHistoryEntry

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
