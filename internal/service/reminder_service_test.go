package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"choreboard/internal/repository"
)

type fakeNotifier struct {
	sent map[int64][]string
}

func (n *fakeNotifier) Send(_ context.Context, chatID int64, text string) error {
	if n.sent == nil {
		n.sent = make(map[int64][]string)
	}
	n.sent[chatID] = append(n.sent[chatID], text)
	return nil
}

func (f *fixture) reminders(notifier Notifier) *ReminderService {
	return NewReminderService(
		repository.NewTaskRepository(f.db),
		repository.NewCategoryRepository(f.db),
		f.users,
		notifier,
	)
}

func TestDigestSectionsByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice")
	now := day(2024, time.March, 15).Add(8 * time.Hour)

	category, err := f.categorySvc.Create(ctx, user.ID, CategoryInput{Name: "kitchen"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Overdue: recurring, never completed.
	if _, err := f.tasks.Create(ctx, user.ID, TaskInput{
		Name: "descale kettle", CategoryID: &category.ID, IsRecurring: true, IntervalDays: intPtr(30),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Due today: one-time with today's due date.
	if _, err := f.tasks.Create(ctx, user.ID, TaskInput{
		Name: "collect parcel", DueDate: timePtr(day(2024, time.March, 15)),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Done: completed this morning, not part of the digest.
	done, err := f.tasks.Create(ctx, user.ID, TaskInput{
		Name: "feed cat", IsRecurring: true, IntervalDays: intPtr(1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.history.Complete(ctx, user.ID, done.ID, CompletionInput{CompletedAt: timePtr(now)}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	digest, err := f.reminders(&fakeNotifier{}).Digest(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}

	if !strings.Contains(digest, "Overdue") || !strings.Contains(digest, "descale kettle") {
		t.Errorf("digest missing overdue section:\n%s", digest)
	}
	if !strings.Contains(digest, "Due today") || !strings.Contains(digest, "collect parcel") {
		t.Errorf("digest missing due-today section:\n%s", digest)
	}
	if !strings.Contains(digest, "kitchen") {
		t.Errorf("digest missing category name:\n%s", digest)
	}
	if strings.Contains(digest, "feed cat") {
		t.Errorf("digest includes a task already done:\n%s", digest)
	}
}

func TestDigestEmptyWhenNothingDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice")
	now := day(2024, time.March, 15)

	task, err := f.tasks.Create(ctx, user.ID, TaskInput{
		Name: "wash windows", IsRecurring: true, IntervalDays: intPtr(14),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.history.Complete(ctx, user.ID, task.ID, CompletionInput{CompletedAt: timePtr(now)}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	digest, err := f.reminders(&fakeNotifier{}).Digest(ctx, user.ID, now)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if digest != "" {
		t.Errorf("digest = %q, want empty", digest)
	}
}

func TestSendDigestsOnlyTargetsLinkedChats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	linked := f.user(t, "alice")
	f.user(t, "bob") // no chat linked

	if err := f.users.SetTelegramChat(ctx, linked.ID, 42); err != nil {
		t.Fatalf("link chat: %v", err)
	}
	if _, err := f.tasks.Create(ctx, linked.ID, TaskInput{
		Name: "vacuum stairs", IsRecurring: true, IntervalDays: intPtr(7),
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	notifier := &fakeNotifier{}
	if err := f.reminders(notifier).SendDigests(ctx, day(2024, time.March, 15)); err != nil {
		t.Fatalf("send digests: %v", err)
	}
	if len(notifier.sent) != 1 || len(notifier.sent[42]) != 1 {
		t.Errorf("sent = %v, want exactly one message to chat 42", notifier.sent)
	}
}
