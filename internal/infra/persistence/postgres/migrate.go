package postgres

import (
	"context"
	"log/slog"

	"lifelink/config"
	"lifelink/internal/domain/entity"
	"lifelink/internal/domain/lifecycle"
	"lifelink/internal/domain/repository"
	"lifelink/internal/domain/service"
	"lifelink/internal/errors"
	"lifelink/internal/infra/persistence/model"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// MigrateParams defines the dependencies for schema migration and seeding.
type MigrateParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
	Hasher service.PasswordHasher
	TxMgr  repository.TransactionManager
}

// RegisterMigration runs the additive schema migration and seeds the
// administrator account on startup.
func RegisterMigration(params MigrateParams) {
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := migrate(ctx, params.DB); err != nil {
				return err
			}

			return seedAdmin(ctx, params)
		},
	})
}

// migrate applies additive schema changes. AutoMigrate never drops columns or
// tables, so existing data survives upgrades.
func migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.AuthenticationModel{},
		&model.RefreshTokenModel{},
		&model.ListingModel{},
		&model.SupplyRequestModel{},
		&model.ReviewModel{},
		&model.SupportTicketModel{},
		&model.ChatMessageModel{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// seedAdmin makes sure the configured administrator account exists with the
// admin role. An existing user with the configured email is promoted instead
// of duplicated.
func seedAdmin(ctx context.Context, params MigrateParams) error {
	admin := params.Config.Admin
	if admin == nil || admin.Email == "" {
		params.Logger.Warn("no admin account configured, skipping seed")

		return nil
	}

	return params.TxMgr.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.NewUserRepository()

		existing, err := userRepo.FindByEmail(ctx, admin.Email)
		if err == nil {
			if existing.Role == entity.RoleAdmin {
				return nil
			}
			existing.Role = entity.RoleAdmin
			params.Logger.Info("promoting existing account to admin", slog.String("email", admin.Email))

			return userRepo.Update(ctx, existing)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return err
		}

		hash, err := params.Hasher.Hash(admin.Password)
		if err != nil {
			return errors.Wrap(err, "failed to hash admin password")
		}

		user := &entity.User{
			Email: admin.Email,
			Name:  admin.Name,
			Role:  entity.RoleAdmin,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		auth := &entity.Authentication{
			UserID:         user.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: admin.Email,
			PasswordHash:   hash,
		}
		if err := factory.NewAuthRepository().CreateAuthentication(ctx, auth); err != nil {
			return err
		}

		params.Logger.Info("seeded admin account", slog.String("email", admin.Email))

		return nil
	})
}
