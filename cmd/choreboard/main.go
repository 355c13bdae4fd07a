package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"choreboard/internal/config"
	"choreboard/internal/notify"
	"choreboard/internal/repository"
	"choreboard/internal/server"
	"choreboard/internal/service"
	"choreboard/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("info").Fatalf("config: %v", err)
	}
	log := logger.Init(cfg.LogLevel)

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	categorySvc := service.NewCategoryService(categoryRepo)
	memberSvc := service.NewMemberService(memberRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo, memberRepo)
	historySvc := service.NewHistoryService(completionRepo, taskRepo, memberRepo)

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken)
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		reminderSvc := service.NewReminderService(taskRepo, categoryRepo, userRepo, notifier)

		job := func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := reminderSvc.SendDigests(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("digest: %v", err)
			}
		}

		scheduler := service.NewSchedulerService(time.Local)
		switch {
		case cfg.ReminderTime != "":
			if _, err := scheduler.ScheduleDaily(cfg.ReminderTime, job); err != nil {
				log.Fatalf("schedule digests: %v", err)
			}
		case cfg.ReminderInterval > 0:
			if _, err := scheduler.ScheduleInterval(cfg.ReminderInterval, job); err != nil {
				log.Fatalf("schedule digests: %v", err)
			}
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := server.New(authSvc, taskSvc, categorySvc, memberSvc, historySvc)
	httpServer := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      srv.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("listening on :%s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Info("shutdown complete")
}
