package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"choreboard/internal/repository"
	"choreboard/internal/schedule"
	"choreboard/pkg/logger"
)

// Notifier delivers a rendered digest to a user's chat.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// ReminderService builds human-readable chore digests and pushes them to
// users with a linked Telegram chat.
type ReminderService struct {
	taskRepo     *repository.TaskRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
	notifier     Notifier
}

func NewReminderService(taskRepo *repository.TaskRepository, categoryRepo *repository.CategoryRepository, userRepo *repository.UserRepository, notifier Notifier) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, categoryRepo: categoryRepo, userRepo: userRepo, notifier: notifier}
}

// SendDigests delivers the daily digest to every user with a linked chat.
// One failing user does not stop the rest.
func (s *ReminderService) SendDigests(ctx context.Context, now time.Time) error {
	users, err := s.userRepo.ListWithTelegram(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		digest, err := s.Digest(ctx, user.ID, now)
		if err != nil {
			logger.L.WithField("user_id", user.ID).WithError(err).Warn("build digest")
			continue
		}
		if digest == "" {
			continue
		}
		if err := s.notifier.Send(ctx, user.TelegramChatID, digest); err != nil {
			logger.L.WithField("user_id", user.ID).WithError(err).Warn("send digest")
		}
	}
	return nil
}

// Digest renders the overdue and due-today chores of one owner as an HTML
// message. Returns "" when nothing needs attention.
func (s *ReminderService) Digest(ctx context.Context, userID uint, now time.Time) (string, error) {
	today := schedule.Midnight(now)

	tasks, err := s.taskRepo.ListActive(ctx, userID)
	if err != nil {
		return "", err
	}
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	catNames := make(map[uint]string, len(categories))
	for _, cat := range categories {
		catNames[cat.ID] = cat.Name
	}

	var overdue, dueToday []TaskWithStatus
	for _, task := range tasks {
		result := schedule.Compute(task, today)
		entry := TaskWithStatus{Task: task, Status: result.Status, NextDue: result.NextDue}
		switch result.Status {
		case schedule.StatusOverdue:
			overdue = append(overdue, entry)
		case schedule.StatusPending:
			dueToday = append(dueToday, entry)
		}
	}
	if len(overdue) == 0 && len(dueToday) == 0 {
		return "", nil
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].NextDue.Before(overdue[j].NextDue)
	})

	var builder strings.Builder
	builder.WriteString("🧹 <b>Chore digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n", today.Format("2006-01-02")))

	if len(overdue) > 0 {
		builder.WriteString("\n⚠️ <b>Overdue</b>\n")
		for _, entry := range overdue {
			builder.WriteString(formatDigestLine(entry, catNames))
		}
	}
	if len(dueToday) > 0 {
		builder.WriteString("\n⏳ <b>Due today</b>\n")
		for _, entry := range dueToday {
			builder.WriteString(formatDigestLine(entry, catNames))
		}
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatDigestLine(entry TaskWithStatus, catNames map[uint]string) string {
	var sb strings.Builder

	sb.WriteString("• ")
	sb.WriteString(html.EscapeString(strings.TrimSpace(entry.Name)))

	if entry.CategoryID != nil {
		if name, ok := catNames[*entry.CategoryID]; ok && strings.TrimSpace(name) != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(strings.TrimSpace(name))))
		}
	}
	if entry.Status == schedule.StatusOverdue {
		sb.WriteString(fmt.Sprintf(" — due %s", entry.NextDue.Format("2006-01-02")))
	}

	sb.WriteByte('\n')
	return sb.String()
}
