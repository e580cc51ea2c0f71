package repo

import (
	"context"

	"github.com/schoolhub/classroom/internal/models"
)

func (r *GormRepo) CreateRoom(ctx context.Context, room *models.Room) error {
	return translate(r.DB.WithContext(ctx).Create(room).Error)
}

func (r *GormRepo) FindRoomByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.DB.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

func (r *GormRepo) AddUserToRoom(ctx context.Context, userID, roomID uint) (*models.UserRoom, error) {
	link := models.UserRoom{UserID: userID, RoomID: roomID}
	if err := r.DB.WithContext(ctx).Create(&link).Error; err != nil {
		return nil, translate(err)
	}
	return &link, nil
}

func (r *GormRepo) UserInRoom(ctx context.Context, userID, roomID uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.UserRoom{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *GormRepo) RoomsOfUser(ctx context.Context, userID uint) ([]models.Room, error) {
	var ids []uint
	if err := r.DB.WithContext(ctx).
		Model(&models.UserRoom{}).
		Where("user_id = ?", userID).
		Pluck("room_id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []models.Room
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (r *GormRepo) MembersOfRoom(ctx context.Context, roomID uint) ([]models.User, error) {
	var ids []uint
	if err := r.DB.WithContext(ctx).
		Model(&models.UserRoom{}).
		Where("room_id = ?", roomID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}
