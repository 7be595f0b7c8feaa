package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"placebook/config"
	"placebook/internal/delivery"
	"placebook/internal/delivery/http"
	httpmiddleware "placebook/internal/delivery/http/middleware"
	"placebook/internal/delivery/http/router/handler"
	deliverymiddleware "placebook/internal/delivery/middleware"
	"placebook/internal/domain/repository"
	"placebook/internal/domain/service"
	"placebook/internal/infra/geocoding"
	logs "placebook/internal/infra/log"
	"placebook/internal/infra/persistence/memory"
	"placebook/internal/infra/persistence/postgres"
	"placebook/internal/infra/qrcode"
	"placebook/internal/infra/routing/osrm"
	"placebook/internal/usecase"
	"placebook/internal/usecase/impl"

	"go.uber.org/fx"
)

const (
	defaultRecenterDebounce        = 700 * time.Millisecond
	defaultRecenterThresholdMeters = 50
	defaultRegionSpanMeters        = 1000
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
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type storageParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newStorage selects the catalog backend: PostgreSQL when configured, the
// embedded in-memory store otherwise.
func newStorage(params storageParams) (repository.PlaceRepository, repository.TransactionManager, error) {
	if params.Config.Postgres == nil {
		params.Logger.Info("No postgres configured, using in-memory catalog store")
		store := memory.NewStore()

		return memory.NewPlaceRepository(store), memory.NewTransactionManager(store), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return postgres.NewPlaceRepository(db), postgres.NewTransactionManager(db), nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStorage,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newGeocodingProvider,
			newRouteProvider,
			newQRCodeService,
		),
	)
}

// newGeocodingProvider creates the Nominatim-backed geocoding provider
func newGeocodingProvider(cfg *config.Config) service.GeocodingProvider {
	return geocoding.NewNominatimClient(cfg.Geocoding)
}

// newRouteProvider creates the OSRM-backed route provider
func newRouteProvider(cfg *config.Config) service.RouteProvider {
	return osrm.NewClient(cfg.Routing)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newTrackerService creates the location tracker with the configured
// recentring policy
func newTrackerService(cfg *config.Config, logger *slog.Logger) usecase.LocationUsecase {
	trackerCfg := impl.TrackerConfig{
		RecenterDebounce:        defaultRecenterDebounce,
		RecenterThresholdMeters: defaultRecenterThresholdMeters,
		RegionSpanMeters:        defaultRegionSpanMeters,
	}
	if cfg.Location != nil {
		if cfg.Location.RecenterDebounce > 0 {
			trackerCfg.RecenterDebounce = cfg.Location.RecenterDebounce
		}
		if cfg.Location.RecenterThresholdMeters > 0 {
			trackerCfg.RecenterThresholdMeters = cfg.Location.RecenterThresholdMeters
		}
		if cfg.Location.RegionSpanMeters > 0 {
			trackerCfg.RegionSpanMeters = cfg.Location.RegionSpanMeters
		}
	}

	return impl.NewTrackerService(trackerCfg, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewGeocodingService,
			impl.NewRoutingService,
			newTrackerService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
			httpmiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPlaceHandler,
			handler.NewGeocodeHandler,
			handler.NewRouteHandler,
			handler.NewLocationHandler,
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
