// Package main provides CLI for user administration.
// Usage: admin create-user --username admin --password secret [--role ADMIN]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"joinerpro/internal/domain/auth"
	"joinerpro/internal/infrastructure/storage/postgres"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "create-user":
		createUser(ctx)
	case "migrate":
		migrate(ctx)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Joiner PRO Admin CLI

Usage:
  admin <command> [options]

Commands:
  create-user  Create a user account
  migrate      Apply pending database migrations
  help         Show this help

Environment Variables:
  DATABASE_URL  Connection string for the database (required)

Examples:
  admin create-user --username admin --password secret --role ADMIN
  admin migrate`)
}

func createUser(ctx context.Context) {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)
	username := fs.String("username", "", "login name (required)")
	password := fs.String("password", "", "plain-text password (required)")
	role := fs.String("role", auth.RoleAdmin, "role: ADMIN or USER")
	_ = fs.Parse(os.Args[2:])

	if *username == "" || *password == "" {
		fmt.Println("Error: --username and --password are required")
		fs.Usage()
		os.Exit(1)
	}

	pool := connect(ctx)
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	userRepo := postgres.NewUserRepo(txManager)
	authService := auth.NewService(userRepo, nil)

	user, err := authService.CreateUser(ctx, *username, *password, *role)
	if err != nil {
		fmt.Printf("Error: failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created user %s (%s) with role %s\n", user.Username, user.ID, user.Role)
}

func migrate(ctx context.Context) {
	pool := connect(ctx)
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Printf("Error: migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied")
}

func connect(ctx context.Context) *postgres.Pool {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		fmt.Println("Error: DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		fmt.Printf("Error: failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	return pool
}
