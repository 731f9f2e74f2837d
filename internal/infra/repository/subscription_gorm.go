package repository

import (
	"app/internal/domain/model"
	domainrepo "app/internal/repository"
	"context"

	"gorm.io/gorm"
)

type subscriptionGormRepository struct {
	db *gorm.DB
}

// DI
func NewSubscriptionGormRepository(db *gorm.DB) domainrepo.SubscriptionRepository {
	return &subscriptionGormRepository{db: db}
}

func (r *subscriptionGormRepository) Create(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// channel側として数える（チャンネル登録者数）
func (r *subscriptionGormRepository) CountByChannel(ctx context.Context, channelID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&n).Error
	return n, err
}

// subscriber側として数える（登録しているチャンネル数）
func (r *subscriptionGormRepository) CountBySubscriber(ctx context.Context, subscriberID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&n).Error
	return n, err
}

// subscriber→channelのエッジが存在するか
func (r *subscriptionGormRepository) Exists(ctx context.Context, subscriberID string, channelID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
