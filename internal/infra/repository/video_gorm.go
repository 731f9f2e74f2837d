package repository

import (
	"app/internal/domain/model"
	domainrepo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type videoGormRepository struct {
	db *gorm.DB
}

// DI
func NewVideoGormRepository(db *gorm.DB) domainrepo.VideoRepository {
	return &videoGormRepository{db: db}
}

func (r *videoGormRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoGormRepository) FindByID(ctx context.Context, videoID string) (*model.Video, error) {
	var v model.Video

	err := r.db.WithContext(ctx).
		Where("id = ?", videoID).
		First(&v).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrVideoNotFound
		}
		return nil, err
	}

	return &v, nil
}

// 複数IDをまとめて取得（見つからないIDは単に含まれない）
func (r *videoGormRepository) FindByIDs(ctx context.Context, videoIDs []string) ([]model.Video, error) {
	if len(videoIDs) == 0 {
		return []model.Video{}, nil
	}

	var videos []model.Video
	err := r.db.WithContext(ctx).
		Where("id IN ?", videoIDs).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	return videos, nil
}

// viewsを+1
func (r *videoGormRepository) IncrementViews(ctx context.Context, videoID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Video{}).
		Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrVideoNotFound
	}
	return nil
}
