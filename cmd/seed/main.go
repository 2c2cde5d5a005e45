// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"hirebase/internal/core/id"
	"hirebase/internal/infrastructure/storage/postgres"
	"hirebase/pkg/logger"
)

// rolePermissions maps seeded roles onto the permission codes the API
// routes check. Admins bypass permission checks entirely, so the admin
// role carries no explicit grants.
var rolePermissions = map[string][]string{
	"recruiter": {
		"campaigns:read",
		"links:read", "links:write",
		"candidates:read", "candidates:write",
		"convocatorias:read",
	},
	"manager": {
		"campaigns:read", "campaigns:write",
		"links:read", "links:write",
		"candidates:read", "candidates:write", "candidates:move",
		"blacklist:read", "blacklist:write",
		"convocatorias:read", "convocatorias:write",
	},
}

var permissionNames = map[string]string{
	"campaigns:read":      "View campaigns",
	"campaigns:write":     "Manage campaigns",
	"links:read":          "View recruitment links",
	"links:write":         "Manage recruitment links",
	"candidates:read":     "View candidates",
	"candidates:write":    "Manage candidates",
	"candidates:move":     "Move candidates between stages",
	"blacklist:read":      "View the blacklist",
	"blacklist:write":     "Manage the blacklist",
	"convocatorias:read":  "View convocatorias",
	"convocatorias:write": "Manage convocatorias",
	"users:manage":        "Manage back-office users",
}

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedPermissions(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed permissions", "error", err)
	}
	if err := seedRoles(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed roles", "error", err)
	}

	adminID, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoCampaign(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Infow("seeding completed successfully", "admin_user_id", adminID)
}

func seedPermissions(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	for code, name := range permissionNames {
		resource, action, _ := strings.Cut(code, ":")
		_, err := pool.Exec(ctx, `
			INSERT INTO permissions (id, code, name, resource, action, created_at)
			VALUES ($1, $2, $3, $4, $5, now())
			ON CONFLICT (code) DO NOTHING
		`, id.New(), code, name, resource, action)
		if err != nil {
			return fmt.Errorf("insert permission %s: %w", code, err)
		}
	}
	log.Infow("permissions seeded", "count", len(permissionNames))
	return nil
}

func seedRoles(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	roles := map[string]string{
		"admin":     "Administrator",
		"recruiter": "Recruiter",
		"manager":   "Hiring Manager",
	}

	for code, name := range roles {
		_, err := pool.Exec(ctx, `
			INSERT INTO roles (id, code, name, is_system, created_at, updated_at)
			VALUES ($1, $2, $3, true, now(), now())
			ON CONFLICT (code) DO NOTHING
		`, id.New(), code, name)
		if err != nil {
			return fmt.Errorf("insert role %s: %w", code, err)
		}
	}

	for roleCode, permCodes := range rolePermissions {
		for _, permCode := range permCodes {
			_, err := pool.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT r.id, p.id FROM roles r, permissions p
				WHERE r.code = $1 AND p.code = $2
				ON CONFLICT DO NOTHING
			`, roleCode, permCode)
			if err != nil {
				return fmt.Errorf("grant %s to %s: %w", permCode, roleCode, err)
			}
		}
	}

	log.Infow("roles seeded", "count", len(roles))
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@hirebase.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, now(), now(), 1)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE code = 'admin'
		ON CONFLICT DO NOTHING
	`, userID)
	if err != nil {
		return id.Nil(), fmt.Errorf("assign admin role: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, nil
}

func seedDemoCampaign(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var existing int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM campaigns WHERE name = 'Warehouse Operators 2026'`,
	).Scan(&existing); err != nil {
		return fmt.Errorf("check demo campaign: %w", err)
	}
	if existing > 0 {
		log.Info("demo campaign already exists")
		return nil
	}

	campaignID := id.New()
	start := time.Now().AddDate(0, 0, -7)
	rules := `[{"name":"minimum age","expression":"has(application.age) && int(application.age) < 18","action":"reject"},` +
		`{"name":"driver license","expression":"!has(application.driver_license) || application.driver_license == ''","action":"flag"}]`

	_, err := pool.Exec(ctx, `
		INSERT INTO campaigns (
			id, name, description, status, start_date, screening_rules,
			created_at, updated_at, version
		)
		VALUES ($1, 'Warehouse Operators 2026', 'Seasonal warehouse hiring drive',
			'active', $2, $3, now(), now(), 1)
	`, campaignID, start, rules)
	if err != nil {
		return fmt.Errorf("insert demo campaign: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO recruitment_links (
			id, campaign_id, token, name, status, max_uses, use_count,
			created_at, updated_at, version
		)
		VALUES ($1, $2, 'demo0000000000000000000000000000', 'Job board posting',
			'active', 0, 0, now(), now(), 1)
	`, id.New(), campaignID)
	if err != nil {
		return fmt.Errorf("insert demo link: %w", err)
	}

	log.Infow("demo campaign seeded", "campaign_id", campaignID)
	return nil
}
