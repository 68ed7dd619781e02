// Command createadmin manages operator accounts out-of-band. There is no API
// surface for creating admins; this tool talks to the database directly.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"wastemanage/internal/config"
	domainAdmin "wastemanage/internal/domain/admin"
	"wastemanage/internal/infrastructure/database/postgres"
	"wastemanage/internal/logger"
	"wastemanage/pkg/utils"
)

func main() {
	var (
		action   = flag.String("action", "create", "create | reset-password | deactivate | activate")
		name     = flag.String("name", "", "admin display name (create)")
		email    = flag.String("email", "", "admin email address")
		password = flag.String("password", "", "admin password (create, reset-password)")
		role     = flag.String("role", domainAdmin.RoleAdmin, "admin role: admin | super-admin")
	)
	flag.Parse()

	if *email == "" {
		fail("email is required")
	}

	cfg, err := config.Load()
	if err != nil {
		fail("failed to load configuration: %v", err)
	}
	if err := logger.Init("production"); err != nil {
		fail("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := postgres.NewDB(cfg)
	if err != nil {
		fail("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		fail("failed to run database migrations: %v", err)
	}

	repo := postgres.NewAdminRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch *action {
	case "create":
		createAdmin(ctx, repo, *name, *email, *password, *role)
	case "reset-password":
		resetPassword(ctx, repo, *email, *password)
	case "deactivate":
		setActive(ctx, repo, *email, false)
	case "activate":
		setActive(ctx, repo, *email, true)
	default:
		fail("unknown action: %s", *action)
	}
}

func createAdmin(ctx context.Context, repo domainAdmin.Repository, name, email, password, role string) {
	if name == "" || password == "" {
		fail("name and password are required to create an admin")
	}
	if !domainAdmin.IsAdminRole(role) {
		fail("invalid role: %s", role)
	}
	if err := utils.ValidatePassword(password); err != nil {
		fail("invalid password: %v", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fail("failed to hash password: %v", err)
	}

	admin := &domainAdmin.Admin{
		ID:             uuid.New(),
		Name:           name,
		Email:          utils.SanitizeEmail(email),
		PasswordHashed: hashed,
		Role:           role,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := repo.Create(ctx, admin); err != nil {
		fail("failed to create admin: %v", err)
	}

	fmt.Printf("admin %s (%s) created with role %s\n", admin.Name, admin.Email, admin.Role)
}

func resetPassword(ctx context.Context, repo domainAdmin.Repository, email, password string) {
	if password == "" {
		fail("password is required")
	}
	if err := utils.ValidatePassword(password); err != nil {
		fail("invalid password: %v", err)
	}

	admin, err := repo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		fail("failed to look up admin: %v", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fail("failed to hash password: %v", err)
	}

	if err := repo.UpdatePassword(ctx, admin.ID, hashed); err != nil {
		fail("failed to update password: %v", err)
	}

	fmt.Printf("password updated for %s\n", admin.Email)
}

func setActive(ctx context.Context, repo domainAdmin.Repository, email string, active bool) {
	admin, err := repo.GetByEmail(ctx, utils.SanitizeEmail(email))
	if err != nil {
		fail("failed to look up admin: %v", err)
	}

	if err := repo.SetActive(ctx, admin.ID, active); err != nil {
		fail("failed to update admin: %v", err)
	}

	state := "deactivated"
	if active {
		state = "activated"
	}
	fmt.Printf("admin %s %s\n", admin.Email, state)
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
