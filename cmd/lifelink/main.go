package main

import (
	"context"
	"log/slog"
	"os"

	"lifelink/config"
	"lifelink/internal/delivery"
	"lifelink/internal/delivery/http"
	"lifelink/internal/delivery/http/middleware"
	"lifelink/internal/delivery/http/router/handler"
	"lifelink/internal/domain/service"
	"lifelink/internal/infra/auth"
	"lifelink/internal/infra/chat"
	"lifelink/internal/infra/geocode"
	logs "lifelink/internal/infra/log"
	"lifelink/internal/infra/media"
	"lifelink/internal/infra/persistence/postgres"
	"lifelink/internal/infra/qrcode"
	"lifelink/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			postgres.RegisterMigration,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewAuthRepository,
			postgres.NewListingRepository,
			postgres.NewRequestRepository,
			postgres.NewReviewRepository,
			postgres.NewTicketRepository,
			postgres.NewChatRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newBcryptHasher,
			auth.NewJWTService,
			media.New,
			geocode.New,
			chat.NewHub,
			newQRCodeService,
		),
	)
}

// newBcryptHasher creates the password hasher from the configured cost.
func newBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewListingService,
			impl.NewRequestService,
			impl.NewReviewService,
			impl.NewSupportService,
			impl.NewChatService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewListingHandler,
			handler.NewRequestHandler,
			handler.NewReviewHandler,
			handler.NewSupportHandler,
			handler.NewChatHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
