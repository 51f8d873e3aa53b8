package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/httpapi"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

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
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)
	authSvc := service.NewAuthService(userRepo, tokens)
	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	reminderSvc := service.NewReminderService(taskRepo, cfg.ReminderWindow)

	server := httpapi.NewServer(tokens, userRepo, authSvc, userSvc, taskSvc, categorySvc)

	if cfg.ReminderAt != "" || cfg.ReminderInterval > 0 {
		runDigest := func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			digests, err := reminderSvc.Digest(jobCtx, time.Now())
			if err != nil {
				log.Printf("reminder digest: %v", err)
				return
			}
			for _, digest := range digests {
				log.Printf("reminder: %s", digest)
			}
		}

		scheduler := service.NewSchedulerService(time.Local)
		if cfg.ReminderAt != "" {
			_, err = scheduler.ScheduleDaily(cfg.ReminderAt, runDigest)
		} else {
			_, err = scheduler.ScheduleInterval(cfg.ReminderInterval, runDigest)
		}
		if err != nil {
			log.Fatalf("schedule reminders: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := server.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Taskboard listening on %s", cfg.Addr)
	if err := server.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
