package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/config"
	"github.com/gradebench/webapp/internal/entity"
	accountRepo "github.com/gradebench/webapp/internal/modules/account/repository"
	accountService "github.com/gradebench/webapp/internal/modules/account/service"
	"github.com/gradebench/webapp/internal/server"
	"github.com/gradebench/webapp/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.ImportUsers {
		importUsers(db, cfg.UsersCSVPath)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})

	srv := server.NewServer(cfg, db, redisClient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("server listening on :%s", cfg.Port)
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
	log.Println("server stopped")
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Account{},
		&entity.Assignment{},
		&entity.Submission{},
	)
}

// importUsers runs the CSV bootstrap synchronously before the server
// starts accepting requests. A missing file is not fatal.
func importUsers(db *gorm.DB, path string) {
	accounts := accountService.NewAccountService(accountRepo.NewAccountRepository(db))

	result, err := accounts.ImportCSV(context.Background(), path)
	if err != nil {
		log.Printf("user bootstrap skipped: %v", err)
		return
	}

	log.Printf("user bootstrap complete: %d created, %d skipped, %d failed",
		result.Created, result.Skipped, result.Failed)
}
