package repo

import (
	"context"

	"github.com/schoolhub/classroom/internal/models"
)

func (r *GormRepo) CreateTask(ctx context.Context, task *models.Task) error {
	return translate(r.DB.WithContext(ctx).Create(task).Error)
}

func (r *GormRepo) FindTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.DB.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, translate(err)
	}
	return &task, nil
}

func (r *GormRepo) TasksOfRoom(ctx context.Context, roomID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.DB.WithContext(ctx).Where("room_id = ?", roomID).Find(&tasks).Error; err != nil {
		return nil, translate(err)
	}
	return tasks, nil
}
