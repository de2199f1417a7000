// Package app wires the storage, data sources and services shared by the
// HTTP server and the command-line tool.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/config"
	"github.com/smartscreen/backend/internal/datasource"
	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/repository/postgres"
	"github.com/smartscreen/backend/internal/repository/routinefile"
	"github.com/smartscreen/backend/internal/service"
)

// App bundles the dependency graph
type App struct {
	Repo      domain.Repository
	Routines  domain.RoutineStore
	Locations *service.LocationResolver
	Gateway   *service.ExternalDataGateway
	Composer  *service.ContentComposer

	pool *pgxpool.Pool
}

// New builds the graph from cfg. The location resolver is left uninitialized.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	policy, err := service.ParseMergePolicy(cfg.MergePolicy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	zone, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{}
	if err := a.connect(ctx, cfg.DatabaseURL); err != nil {
		return nil, err
	}

	a.Routines = a.Repo
	if cfg.RoutinesFile != "" {
		fileStore, err := routinefile.Open(cfg.RoutinesFile)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Routines = fileStore
		logrus.WithField("path", cfg.RoutinesFile).Info("Using routines from file")
	}

	client := datasource.NewClient()
	nominatimClient := datasource.NewClient(datasource.WithRateLimit(cfg.GeocodeRatePerSec, 1))

	a.Locations = service.NewLocationResolver(a.Repo,
		datasource.NewIPLocator(client),
		datasource.NewOpenMeteoGeocoder(client, datasource.OpenMeteoGeocodingURL),
		datasource.NewNominatimGeocoder(nominatimClient, datasource.NominatimReverseURL),
	)
	a.Gateway = service.NewExternalDataGateway(
		a.Repo,
		a.Locations,
		service.NewWeatherService(datasource.NewOpenMeteoWeather(client)),
		service.NewQuoteService(client,
			datasource.NewZenQuotesProvider(client, datasource.ZenQuotesURL),
			datasource.NewDummyJSONProvider(client, datasource.DummyJSONURL),
		),
		service.NewTrafficService(),
	)
	a.Composer = service.NewContentComposer(a.Routines, a.Repo, a.Gateway, service.NewRoutineEvaluator(policy))
	if zone != nil {
		a.Composer.SetTimezone(zone)
	}
	return a, nil
}

// connect uses PostgreSQL when databaseURL is reachable and the in-memory
// repository otherwise
func (a *App) connect(ctx context.Context, databaseURL string) error {
	log := logrus.WithField("component", "storage")
	if databaseURL == "" {
		log.Info("DATABASE_URL not set, running with in-memory data")
		a.Repo = postgres.NewMockRepository()
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.WithError(err).Warn("Could not connect to database, running with in-memory data")
		if pool != nil {
			pool.Close()
		}
		a.Repo = postgres.NewMockRepository()
		return nil
	}
	log.Info("Connected to PostgreSQL")

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("app: %w", err)
	}
	if err := repo.Seed(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("app: %w", err)
	}
	a.Repo = repo
	a.pool = pool
	return nil
}

// Close releases the database pool, if any
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
