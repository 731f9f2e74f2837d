package model

import "time"

// 視聴履歴の順序はこのテーブルの挿入順（IDの昇順）。
// 動画自体の作成日時ではない。
type WatchHistoryEntry struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	VideoID   string    `json:"videoId" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"createdAt"`
}
