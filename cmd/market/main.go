package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jonathanpoaquiza/market-jals/config"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/middleware"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/router/handler"
	"github.com/jonathanpoaquiza/market-jals/internal/delivery/http/ws"
	"github.com/jonathanpoaquiza/market-jals/internal/domain/service"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/auth"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/firebase"
	logs "github.com/jonathanpoaquiza/market-jals/internal/infra/log"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/metrics"
	firestorerepo "github.com/jonathanpoaquiza/market-jals/internal/infra/persistence/firestore"
	postgresrepo "github.com/jonathanpoaquiza/market-jals/internal/infra/persistence/postgres"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/pubsub"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/qrcode"
	"github.com/jonathanpoaquiza/market-jals/internal/infra/storage"
	"github.com/jonathanpoaquiza/market-jals/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		firebase.Module,
		firestorerepo.Module,
		postgresrepo.Module,
		auth.Module,
		pubsub.Module,
		storage.Module,
		metrics.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newQRCodeService,
			ws.NewHub,
			ws.NewBroadcaster,
		),
	)
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
			impl.NewAuthService,
			impl.NewCatalogService,
			impl.NewChatService,
			impl.NewCartService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewSessionHandler,
			handler.NewUserHandler,
			handler.NewProductHandler,
			handler.NewChatHandler,
			handler.NewCartHandler,
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

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
