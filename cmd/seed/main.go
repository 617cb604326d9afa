// Command seed bootstraps the roles, permissions and initial accounts an
// empty deployment needs. It is idempotent only in the sense that rerunning
// against a seeded database fails on the unique indexes; wipe first.
package main

import (
	"context"
	"time"

	"github.com/halolight/admin-backend/internal/core/domain"
	"github.com/halolight/admin-backend/internal/core/service"
	"github.com/halolight/admin-backend/internal/infrastructure/config"
	mongodb "github.com/halolight/admin-backend/internal/infrastructure/db/mongo"
	"github.com/halolight/admin-backend/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	roles := mongodb.NewRoleRepository(db)
	users := mongodb.NewUserRepository(db)
	hasher := service.NewPasswordHasher(cfg.Auth.BcryptCost)

	// Scoped permission grids per resource; the admin role gets the global
	// wildcard instead of an enumeration.
	perm := func(action, resource, description string) domain.Permission {
		return domain.Permission{Action: action, Resource: resource, Description: description}
	}

	adminRole, err := roles.Insert(ctx, &domain.Role{
		Name:  "admin",
		Label: "Administrator",
		Permissions: []domain.Permission{
			perm("*", "*", "Full system access"),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed admin role")
	}

	managerRole, err := roles.Insert(ctx, &domain.Role{
		Name:  "manager",
		Label: "Manager",
		Permissions: []domain.Permission{
			perm("users:*", "users", "Full user management"),
			perm("roles:read", "roles", "View roles"),
			perm("dashboard:read", "dashboard", "View dashboard"),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed manager role")
	}

	userRole, err := roles.Insert(ctx, &domain.Role{
		Name:  "user",
		Label: "User",
		Permissions: []domain.Permission{
			perm("users:read", "users", "View users"),
			perm("dashboard:read", "dashboard", "View dashboard"),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed user role")
	}

	viewerRole, err := roles.Insert(ctx, &domain.Role{
		Name:  "viewer",
		Label: "Viewer",
		Permissions: []domain.Permission{
			perm("dashboard:read", "dashboard", "View dashboard"),
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed viewer role")
	}

	accounts := []struct {
		email    string
		username string
		name     string
		password string
		role     *domain.Role
	}{
		{"admin@halolight.h7ml.cn", "admin", "Admin User", "admin123456", adminRole},
		{"manager@halolight.h7ml.cn", "manager", "Manager User", "manager123456", managerRole},
		{"user@halolight.h7ml.cn", "user", "Regular User", "user123456", userRole},
		{"viewer@halolight.h7ml.cn", "viewer", "Viewer User", "viewer123456", viewerRole},
	}

	for _, a := range accounts {
		hash, err := hasher.Hash(a.password)
		if err != nil {
			log.Fatal().Err(err).Msg("hash seed password")
		}
		created, err := users.Create(ctx, &domain.User{
			Email:        a.email,
			Username:     a.username,
			Name:         a.name,
			PasswordHash: hash,
			Status:       domain.StatusActive,
			Roles:        []domain.Role{*a.role},
		})
		if err != nil {
			log.Fatal().Err(err).Str("email", a.email).Msg("seed user")
		}
		log.Info().Str("email", created.Email).Str("role", a.role.Name).Msg("seeded user")
	}

	log.Info().Msg("seed complete")
}
