package model

import "time"

type User struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	FullName string `json:"fullname" gorm:"column:fullname;not null"`

	//bcryptハッシュのみ保存（平文は保存しない・返さない）
	Password string `json:"-" gorm:"not null"`

	Avatar     string `json:"avatar" gorm:"not null"`
	CoverImage string `json:"coverImage"`

	//現在有効なrefresh tokenはユーザーにつき1つ（nullはセッションなし）
	RefreshToken *string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
