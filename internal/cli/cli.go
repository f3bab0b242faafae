package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weathertracker/internal/api/http"
	"github.com/i474232898/weathertracker/internal/cities"
	"github.com/i474232898/weathertracker/internal/config"
	"github.com/i474232898/weathertracker/internal/logger"
	"github.com/i474232898/weathertracker/internal/metrics"
	"github.com/i474232898/weathertracker/internal/scheduler"
	"github.com/i474232898/weathertracker/internal/store"
	"github.com/i474232898/weathertracker/internal/weather"
	"github.com/i474232898/weathertracker/internal/weather/providers"
)

// App bundles the components shared by all commands.
type App struct {
	Config  *config.AppConfig
	Log     zerolog.Logger
	Weather *weather.Service
	Cities  *cities.Catalog
	Metrics *metrics.Metrics

	closers []func() error
}

// Close releases resources opened by Build.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.Log.Warn().Err(err).Msg("error during close")
		}
	}
}

// Build wires the application from configuration.
func Build(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	log := logger.Init(cfg.LogLevel, cfg.LogFormat)
	app := &App{Config: cfg, Log: log, Metrics: metrics.New()}

	if cfg.SessionSecret == "" {
		log.Debug().Msg("SESSION_SECRET is not set")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	provider := providers.NewTomorrowProvider(httpClient, cfg.TomorrowAPIKey, cfg.TomorrowBaseURL, log)

	var history weather.Store
	if cfg.RedisURL != "" {
		client, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		history = store.NewRedisStore(client, cfg.HistoryMaxEntries, cfg.HistoryMaxAge)
		log.Info().Msg("using redis history store")
	} else {
		history = store.NewMemoryStore(cfg.HistoryMaxEntries, cfg.HistoryMaxAge)
	}

	app.Weather = weather.NewService(provider, history, app.Metrics, log)
	app.Cities = cities.NewCatalog(cfg.CityListPath, log)
	return app, nil
}

// New returns the root command. Without a subcommand it runs the server.
func New(loadConfig func() (*config.AppConfig, error)) *cobra.Command {
	var app *App

	root := &cobra.Command{
		Use:           "weathertracker",
		Short:         "Weather lookup web application with city autocomplete",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			app, err = Build(cmd.Context(), cfg)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				app.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), app)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), app)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "lookup <location>",
		Short: "Print the current weather for a place name or \"lat,lon\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := app.Weather.Lookup(cmd.Context(), strings.Join(args, " "))
			if err := res.Error(); err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), res.Report)
			return nil
		},
	})

	var limit int
	suggest := &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print city suggestions for a partial name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range app.Cities.Suggest(strings.Join(args, " "), limit) {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	suggest.Flags().IntVarP(&limit, "limit", "n", cities.DefaultMaxResults, "maximum number of suggestions")
	root.AddCommand(suggest)

	return root
}

func printReport(w io.Writer, r weather.Report) {
	place := r.City
	if r.Country != "" {
		place += ", " + r.Country
	}
	fmt.Fprintf(w, "LOCATION\t %s\n", place)
	fmt.Fprintf(w, "CONDITION\t %s\n", r.Condition)
	fmt.Fprintf(w, "TEMP\t\t %d°%s (H %d° / L %d°)\n", r.Temperature, r.TemperatureUnit, r.High, r.Low)
	fmt.Fprintf(w, "WIND\t\t %d %s\n", r.WindSpeed, r.WindSpeedUnit)
	fmt.Fprintf(w, "HUMIDITY\t %d%%\n", r.Humidity)
	fmt.Fprintf(w, "VISIBILITY\t %d %s\n", r.Visibility, r.VisibilityUnit)
	fmt.Fprintf(w, "UV INDEX\t %d\n", r.UVIndex)
	fmt.Fprintf(w, "AIR QUALITY\t %s (%d)\n", r.AQI, r.AQIValue)
}

func serve(ctx context.Context, app *App) error {
	cfg := app.Config

	// Scheduler that periodically refreshes the warm-up locations.
	sched := scheduler.New(cfg.WarmLocations, cfg.WarmInterval, app.Weather, app.Log)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	server := httpapi.NewApp(httpapi.Deps{
		Weather:         app.Weather,
		Cities:          app.Cities,
		Metrics:         app.Metrics,
		SuggestionLimit: cfg.SuggestionLimit,
		Log:             app.Log,
	})

	errCh := make(chan error, 1)
	go func() {
		app.Log.Info().Str("port", cfg.Port).Msg("http server listening")
		errCh <- server.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("fiber server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		app.Log.Error().Err(err).Msg("error during shutdown")
	}
	app.Log.Info().Msg("shutdown complete")
	return nil
}
