package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"choreboard/internal/model"
)

// CompletionRepository owns the completion audit log together with the
// denormalized Task.LastCompletedAt cache. Every write here pairs the log
// mutation with the cache update inside one transaction, so the cache always
// equals the latest surviving completion and can never point at a deleted
// record.
type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Create appends a completion record and sets the task's cached timestamp to
// the record's timestamp. Last writer wins when two completions race; SQLite
// serializes the writes.
func (r *CompletionRepository) Create(ctx context.Context, completion *model.Completion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(completion).Error; err != nil {
			return fmt.Errorf("create completion: %w", err)
		}
		if err := tx.Model(&model.Task{}).
			Where("user_id = ? AND id = ?", completion.UserID, completion.TaskID).
			Update("last_completed_at", completion.CompletedAt).Error; err != nil {
			return fmt.Errorf("update completion cache: %w", err)
		}
		return nil
	})
}

func (r *CompletionRepository) ListByTask(ctx context.Context, userID, taskID uint) ([]model.Completion, error) {
	var completions []model.Completion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		Order("completed_at DESC").
		Find(&completions).Error; err != nil {
		return nil, err
	}
	return completions, nil
}

func (r *CompletionRepository) FindByID(ctx context.Context, userID, completionID uint) (*model.Completion, error) {
	var completion model.Completion
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, completionID).
		First(&completion).Error; err != nil {
		return nil, err
	}
	return &completion, nil
}

// Delete removes one completion record and recomputes the task's cached
// timestamp as the maximum over the surviving records, or NULL when none
// remain.
func (r *CompletionRepository) Delete(ctx context.Context, userID, completionID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var completion model.Completion
		if err := tx.Where("user_id = ? AND id = ?", userID, completionID).
			First(&completion).Error; err != nil {
			return err
		}
		if err := tx.Delete(&completion).Error; err != nil {
			return fmt.Errorf("delete completion: %w", err)
		}

		var latest model.Completion
		err := tx.Where("task_id = ?", completion.TaskID).
			Order("completed_at DESC").
			First(&latest).Error
		var cachedAt interface{}
		switch {
		case err == nil:
			cachedAt = latest.CompletedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			cachedAt = nil
		default:
			return fmt.Errorf("find latest completion: %w", err)
		}

		if err := tx.Model(&model.Task{}).
			Where("id = ?", completion.TaskID).
			Update("last_completed_at", cachedAt).Error; err != nil {
			return fmt.Errorf("update completion cache: %w", err)
		}
		return nil
	})
}

// ClearForUser deletes every completion record of the owner's tasks and
// resets all their cached timestamps in one transaction; doing the halves
// separately would leave stale caches behind.
func (r *CompletionRepository) ClearForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.Completion{}).Error; err != nil {
			return fmt.Errorf("clear completions: %w", err)
		}
		if err := tx.Model(&model.Task{}).
			Where("user_id = ?", userID).
			Update("last_completed_at", nil).Error; err != nil {
			return fmt.Errorf("reset completion cache: %w", err)
		}
		return nil
	})
}
