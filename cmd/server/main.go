package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/joho/godotenv"

	"github.com/taskmasterhq/taskmaster/internal/api"
	"github.com/taskmasterhq/taskmaster/internal/config"
	"github.com/taskmasterhq/taskmaster/internal/database"
	"github.com/taskmasterhq/taskmaster/internal/repository"
	"github.com/taskmasterhq/taskmaster/internal/service"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Connecting to PostgreSQL...")
	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.Server.AutoMigrate {
		log.Println("🔄 Running auto migration...")
		if err := database.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to run auto migration: %v", err)
		}
		log.Println("✅ Auto migration completed")
	}

	taskRepo := repository.NewSQLTaskRepository(db)
	statusRepo := repository.NewSQLStatusCheckRepository(db)

	taskService := service.NewTaskService(taskRepo)
	statusService := service.NewStatusService(statusRepo)

	handler := api.NewHandler(taskService, statusService)
	app := api.NewServer(handler)

	go func() {
		log.Printf("🚀 TaskMaster HTTP server listening on port %s", cfg.Server.HTTPPort)
		if err := app.Listen(":" + cfg.Server.HTTPPort); err != nil {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("📴 Shutting down server...")
				return app.ShutdownWithContext(ctx)
			},
			"database": func(ctx context.Context) error {
				return db.Close()
			},
		},
	)

	exitCode := <-wait
	log.Println("✅ Server shutdown complete")
	os.Exit(exitCode)
}
