package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"choreboard/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// ListActive selects the tasks that still belong on the board: recurring
// tasks unconditionally, one-time tasks only while never completed. A
// completed one-time task drops out permanently.
func (r *TaskRepository) ListActive(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND (is_recurring = ? OR last_completed_at IS NULL)", userID, true).
		Order("due_date, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUser returns every task of the owner, completed one-time tasks
// included.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes a task and its completion records in one transaction.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{})
		if result.Error != nil {
			return fmt.Errorf("delete task: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Completion{}).Error; err != nil {
			return fmt.Errorf("delete task history: %w", err)
		}
		return nil
	})
}
