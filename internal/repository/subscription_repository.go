package repository

import (
	"app/internal/domain/model"
	"context"
)

// 購読エッジの保存・集計
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	//channel側として数える＝チャンネル登録者数
	CountByChannel(ctx context.Context, channelID string) (int64, error)
	//subscriber側として数える＝自分が登録しているチャンネル数
	CountBySubscriber(ctx context.Context, subscriberID string) (int64, error)
	//subscriber→channelのエッジが存在するか
	Exists(ctx context.Context, subscriberID string, channelID string) (bool, error)
}
