package model

import "time"

// SubscriberとChannelはどちらもUserを参照する。向きが意味を持つ
// （A→Bは「AがBのチャンネルを購読している」）。
type Subscription struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	SubscriberID string    `json:"subscriberId" gorm:"type:uuid;not null;index"`
	ChannelID    string    `json:"channelId" gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
}
