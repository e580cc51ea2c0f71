package repo

import (
	"context"

	"github.com/schoolhub/classroom/internal/models"
)

func (r *GormRepo) CreateAchievement(ctx context.Context, achievement *models.Achievement) error {
	return translate(r.DB.WithContext(ctx).Create(achievement).Error)
}

func (r *GormRepo) FindAchievementByID(ctx context.Context, id uint) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.DB.WithContext(ctx).First(&achievement, id).Error; err != nil {
		return nil, translate(err)
	}
	return &achievement, nil
}
