package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-api/modules/api"
	"github.com/example/task-api/modules/auth"
	"github.com/example/task-api/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Management API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule()) // Account and token lifecycle
	app.Register(task.NewModule()) // Task storage and bulk mutations
	app.Register(api.NewModule())  // Depends on auth and task modules

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /users/register             - Register a new account")
	log.Println("  POST   /users/login                - Login and get tokens")
	log.Println("  POST   /users/login/token-refresh  - Refresh the access token")
	log.Println("  GET    /health                     - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /users/logout               - Revoke a refresh token")
	log.Println("  GET    /users/me                   - Current account")
	log.Println("  PUT    /users/change-pass          - Change password")
	log.Println("  GET    /tasks                      - List live tasks")
	log.Println("  POST   /tasks                      - Create a task")
	log.Println("  GET    /tasks/{id}                 - Get a task")
	log.Println("  PUT    /tasks/{id}                 - Update a task")
	log.Println("  PATCH  /tasks/{id}                 - Partially update a task")
	log.Println("  DELETE /tasks/{id}                 - Soft-delete a task")
	log.Println("  PATCH  /tasks/{id}/status          - Change task status")
	log.Println("  POST   /tasks/bulk-update-status   - Bulk status change")
	log.Println("  DELETE /tasks/bulk-delete          - Bulk soft delete")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
