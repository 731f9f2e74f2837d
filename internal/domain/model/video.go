package model

import "time"

type Video struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     string `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	VideoFile   string `json:"videoFile" gorm:"not null"`
	Thumbnail   string `json:"thumbnail"`

	//秒
	Duration int   `json:"duration"`
	Views    int64 `json:"views" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
