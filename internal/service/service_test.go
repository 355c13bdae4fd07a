package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"choreboard/internal/model"
	"choreboard/internal/repository"
)

var testDBSeq atomic.Int64

type fixture struct {
	db          *gorm.DB
	users       *repository.UserRepository
	tasks       *TaskService
	history     *HistoryService
	auth        *AuthService
	categorySvc *CategoryService
	memberSvc   *MemberService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	return &fixture{
		db:          db,
		users:       userRepo,
		tasks:       NewTaskService(taskRepo, categoryRepo, memberRepo),
		history:     NewHistoryService(completionRepo, taskRepo, memberRepo),
		auth:        NewAuthService(userRepo, "test-secret", time.Hour),
		categorySvc: NewCategoryService(categoryRepo),
		memberSvc:   NewMemberService(memberRepo),
	}
}

func (f *fixture) user(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	if err := f.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(n int) *int              { return &n }
