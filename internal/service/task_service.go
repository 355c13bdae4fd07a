package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"choreboard/internal/model"
	"choreboard/internal/repository"
	"choreboard/internal/schedule"
)

// TaskInput represents data required to create or update a task.
type TaskInput struct {
	Name         string
	Notes        string
	CategoryID   *uint
	MemberID     *uint
	IsRecurring  bool
	IntervalDays *int
	DueDate      *time.Time
}

// TaskWithStatus is a task with its derived schedule state attached.
type TaskWithStatus struct {
	model.Task
	Status  schedule.Status `json:"status"`
	NextDue time.Time       `json:"next_due"`
}

// TaskService wraps task-related business logic.
type TaskService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	memberRepo   *repository.MemberRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, memberRepo *repository.MemberRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo, categoryRepo: categoryRepo, memberRepo: memberRepo}
}

func validateTaskInput(input TaskInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.IsRecurring && (input.IntervalDays == nil || *input.IntervalDays <= 0) {
		return fmt.Errorf("%w: recurring task needs a positive interval in days", ErrInvalidInput)
	}
	return nil
}

// Create validates the input and stores a new task for the owner. The field
// not selected by the recurrence flag is nulled, keeping exactly one of
// {interval, due date} active.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, userID, input); err != nil {
		return nil, err
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  input.CategoryID,
		MemberID:    input.MemberID,
		Name:        strings.TrimSpace(input.Name),
		Notes:       input.Notes,
		IsRecurring: input.IsRecurring,
	}
	if input.IsRecurring {
		task.IntervalDays = input.IntervalDays
	} else {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update replaces a task's editable fields, reapplying validation and the
// one-of-{interval,due date} convention. The completion cache is untouched.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input TaskInput) (*model.Task, error) {
	if err := validateTaskInput(input); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, userID, input); err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, orNotFound(err)
	}

	task.Name = strings.TrimSpace(input.Name)
	task.Notes = input.Notes
	task.CategoryID = input.CategoryID
	task.MemberID = input.MemberID
	task.IsRecurring = input.IsRecurring
	if input.IsRecurring {
		task.IntervalDays = input.IntervalDays
		task.DueDate = nil
	} else {
		task.IntervalDays = nil
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get loads one task with its status computed for the given day.
func (s *TaskService) Get(ctx context.Context, userID, taskID uint, today time.Time) (*TaskWithStatus, error) {
	task, err := s.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, orNotFound(err)
	}
	result := schedule.Compute(*task, today)
	return &TaskWithStatus{Task: *task, Status: result.Status, NextDue: result.NextDue}, nil
}

// ListActive returns the owner's active tasks, each with status and next-due
// computed for the given day. Completed one-time tasks are excluded by the
// repository's selection rule.
func (s *TaskService) ListActive(ctx context.Context, userID uint, today time.Time) ([]TaskWithStatus, error) {
	tasks, err := s.taskRepo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]TaskWithStatus, 0, len(tasks))
	for _, task := range tasks {
		result := schedule.Compute(task, today)
		out = append(out, TaskWithStatus{Task: task, Status: result.Status, NextDue: result.NextDue})
	}
	return out, nil
}

// ListAll returns every task of the owner, completed one-time tasks included.
func (s *TaskService) ListAll(ctx context.Context, userID uint) ([]model.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// Delete removes a task together with its completion history.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	return orNotFound(s.taskRepo.Delete(ctx, userID, taskID))
}

// checkRefs verifies that referenced category and member belong to the owner.
func (s *TaskService) checkRefs(ctx context.Context, userID uint, input TaskInput) error {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, userID, *input.CategoryID); err != nil {
			return orNotFound(err)
		}
	}
	if input.MemberID != nil {
		if _, err := s.memberRepo.FindByID(ctx, userID, *input.MemberID); err != nil {
			return orNotFound(err)
		}
	}
	return nil
}
