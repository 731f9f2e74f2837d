package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
)

// チャンネルプロフィールの集計と購読エッジの作成
type ChannelUsecase struct {
	users repository.UserRepository
	subs  repository.SubscriptionRepository
	idGen IDGenerator
	clock Clock
}

// DI
func NewChannelUsecase(
	users repository.UserRepository,
	subs repository.SubscriptionRepository,
	idGen IDGenerator,
	clock Clock,
) *ChannelUsecase {
	return &ChannelUsecase{
		users: users,
		subs:  subs,
		idGen: idGen,
		clock: clock,
	}
}

// Profileはチャンネルの集計ビューを組み立てる。
// viewerIDは任意。空（匿名）ならisSubscribedは常にfalse。
func (u *ChannelUsecase) Profile(ctx context.Context, username string, viewerID string) (*ChannelProfileDTO, error) {
	channel, err := u.users.FindByUsername(ctx, normalize(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "channel does not exist")
		}
		return nil, ErrInternal
	}

	//channel側のエッジ数＝登録者数
	subscribers, err := u.subs.CountByChannel(ctx, channel.ID)
	if err != nil {
		return nil, ErrInternal
	}

	//subscriber側のエッジ数＝このユーザーが登録しているチャンネル数
	subscribedTo, err := u.subs.CountBySubscriber(ctx, channel.ID)
	if err != nil {
		return nil, ErrInternal
	}

	//viewer→channelのエッジがあればisSubscribed
	isSubscribed := false
	if viewerID != "" {
		isSubscribed, err = u.subs.Exists(ctx, viewerID, channel.ID)
		if err != nil {
			return nil, ErrInternal
		}
	}

	//返すフィールドはここで構成したものが全て。password等は型として持たない
	return &ChannelProfileDTO{
		FullName:               channel.FullName,
		Username:               channel.Username,
		Email:                  channel.Email,
		Avatar:                 channel.Avatar,
		CoverImage:             channel.CoverImage,
		SubscribersCount:       subscribers,
		ChannelSubscribedCount: subscribedTo,
		IsSubscribed:           isSubscribed,
	}, nil
}

// Subscribeはviewer→channelの購読エッジを作る
func (u *ChannelUsecase) Subscribe(ctx context.Context, viewerID string, username string) error {
	channel, err := u.users.FindByUsername(ctx, normalize(username))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return NewHTTPError(http.StatusNotFound, "channel does not exist")
		}
		return ErrInternal
	}

	if channel.ID == viewerID {
		return NewHTTPError(http.StatusBadRequest, "cannot subscribe to yourself")
	}

	sub := &model.Subscription{
		ID:           u.idGen.NewID(),
		SubscriberID: viewerID,
		ChannelID:    channel.ID,
		CreatedAt:    u.clock.Now(),
	}

	if err := u.subs.Create(ctx, sub); err != nil {
		return ErrInternal
	}
	return nil
}
