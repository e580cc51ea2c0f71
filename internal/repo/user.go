package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/schoolhub/classroom/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *GormRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// SetRefreshToken overwrites whatever refresh token the user had. Used at
// login, where superseding every other live session is the intent.
func (r *GormRepo) SetRefreshToken(ctx context.Context, userID uint, token string) error {
	return translate(r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error)
}

// RotateRefreshToken replaces the stored refresh token only where it still
// equals the presented one. A second refresh racing on the same token loses:
// its conditional update matches no row and it gets ErrStaleRefreshToken.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, userID uint, presented, next string) error {
	result := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", userID, presented).
		Update("refresh_token", next)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleRefreshToken
	}
	return nil
}

func (r *GormRepo) UpdateUser(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Save(user).Error)
}

// AwardAchievement links the achievement and bumps the user's score in one
// transaction, so a failed insert never leaves a stray score increment.
func (r *GormRepo) AwardAchievement(ctx context.Context, userID, achievementID uint) (*models.UserAchievement, error) {
	link := models.UserAchievement{UserID: userID, AchievementID: achievementID}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		return tx.Model(&user).Update("score", user.Score+1).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (r *GormRepo) AchievementsOfUser(ctx context.Context, userID uint) ([]models.Achievement, error) {
	var ids []uint
	if err := r.DB.WithContext(ctx).
		Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var achievements []models.Achievement
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&achievements).Error; err != nil {
		return nil, translate(err)
	}
	return achievements, nil
}
