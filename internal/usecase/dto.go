package usecase

import (
	"time"

	"app/internal/domain/model"
)

// API返却用のユーザー。passwordとrefresh tokenは型として持たない
type UserDTO struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

// model.UserをAPI返却用DTOに変換。
func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
	}
}

// チャンネルプロフィールの集計ビュー
type ChannelProfileDTO struct {
	FullName               string `json:"fullname"`
	Username               string `json:"username"`
	Email                  string `json:"email"`
	Avatar                 string `json:"avatar"`
	CoverImage             string `json:"coverImage"`
	SubscribersCount       int64  `json:"subscribersCount"`
	ChannelSubscribedCount int64  `json:"channelSubscribedCount"`
	IsSubscribed           bool   `json:"isSubscribed"`
}

// 視聴履歴に付けるownerの要約（単一値。リストにしない）
type OwnerDTO struct {
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// 視聴履歴1件分の解決済みビュー
type WatchedVideoDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    int       `json:"duration"`
	Views       int64     `json:"views"`
	Owner       OwnerDTO  `json:"owner"`
	WatchedAt   time.Time `json:"watchedAt"`
}
