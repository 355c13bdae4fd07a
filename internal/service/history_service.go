package service

import (
	"context"
	"time"

	"choreboard/internal/model"
	"choreboard/internal/repository"
)

// CompletionInput carries caller-supplied data for completing a task.
type CompletionInput struct {
	MemberID    *uint
	CompletedAt *time.Time // defaults to the current time
	Notes       string
}

// HistoryService maintains the completion audit trail and, through the
// completion repository, the cached last-completion timestamp on tasks.
type HistoryService struct {
	completionRepo *repository.CompletionRepository
	taskRepo       *repository.TaskRepository
	memberRepo     *repository.MemberRepository
}

func NewHistoryService(completionRepo *repository.CompletionRepository, taskRepo *repository.TaskRepository, memberRepo *repository.MemberRepository) *HistoryService {
	return &HistoryService{completionRepo: completionRepo, taskRepo: taskRepo, memberRepo: memberRepo}
}

// Complete records a completion for the owner's task and updates the task's
// cached timestamp in the same transaction.
func (s *HistoryService) Complete(ctx context.Context, userID, taskID uint, input CompletionInput) (*model.Completion, error) {
	if _, err := s.taskRepo.FindByID(ctx, userID, taskID); err != nil {
		return nil, orNotFound(err)
	}
	if input.MemberID != nil {
		if _, err := s.memberRepo.FindByID(ctx, userID, *input.MemberID); err != nil {
			return nil, orNotFound(err)
		}
	}

	completedAt := time.Now()
	if input.CompletedAt != nil {
		completedAt = *input.CompletedAt
	}

	completion := model.Completion{
		TaskID:      taskID,
		UserID:      userID,
		MemberID:    input.MemberID,
		CompletedAt: completedAt,
		Notes:       input.Notes,
	}
	if err := s.completionRepo.Create(ctx, &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}

// ListForTask returns the completion log of one task, newest first.
func (s *HistoryService) ListForTask(ctx context.Context, userID, taskID uint) ([]model.Completion, error) {
	if _, err := s.taskRepo.FindByID(ctx, userID, taskID); err != nil {
		return nil, orNotFound(err)
	}
	return s.completionRepo.ListByTask(ctx, userID, taskID)
}

// DeleteCompletion removes one audit record; the task's cached timestamp is
// recomputed from the surviving records inside the same transaction.
func (s *HistoryService) DeleteCompletion(ctx context.Context, userID, completionID uint) error {
	return orNotFound(s.completionRepo.Delete(ctx, userID, completionID))
}

// ClearHistory wipes the owner's entire completion log and resets every
// cached timestamp as one logical operation.
func (s *HistoryService) ClearHistory(ctx context.Context, userID uint) error {
	return s.completionRepo.ClearForUser(ctx, userID)
}
