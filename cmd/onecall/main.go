// Package main provides the entrypoint for the onecall weather poller.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/wxpanel/onecall/internal/config"
	"github.com/wxpanel/onecall/internal/provider/resilience"
	"github.com/wxpanel/onecall/internal/telemetry"
	"github.com/wxpanel/onecall/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "onecall"

	// A missing .env is fine, the environment may already be populated.
	envErr := godotenv.Load()

	cfg := config.FromEnv()

	log := zerolog.New(os.Stdout).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Bool("dotenv", envErr == nil).
		Msg("starting onecall")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryOn,
		ExportInterval: cfg.MetricsInterval,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryOn {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := telemetry.NewFetchMetrics(tp.Meter)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		return
	}

	breaker := resilience.DefaultCircuitBreakerConfig(openweathermap.ProviderName)
	breaker.OnStateChange = resilience.LogStateChanges(log)

	httpConfig := resilience.DefaultClientConfig(openweathermap.ProviderName)
	httpConfig.Timeout = cfg.HTTPTimeout
	httpConfig.CircuitBreaker = &breaker

	client := openweathermap.NewClient(openweathermap.ClientConfig{
		APIKey:     cfg.APIKey,
		Units:      cfg.Units,
		OneCallURL: cfg.OneCallURL,
		Sections: openweathermap.Sections{
			Current: cfg.Current,
			Minutes: cfg.Minutes,
			Hours:   cfg.Hours,
			Days:    cfg.Days,
		},
		HTTPClient: resilience.NewClient(httpConfig),
		Tracer:     tp.Tracer,
		Metrics:    metrics,
		Logger:     log,
	})
	client.SetLocation(cfg.Lat, cfg.Lon)

	sections := client.Sections()
	log.Info().
		Float64("lat", cfg.Lat).
		Float64("lon", cfg.Lon).
		Bool("current", sections.Current).
		Uint("minutes", sections.Minutes).
		Uint("hours", sections.Hours).
		Uint("days", sections.Days).
		Int("json_size", client.JSONSize()).
		Msg("client configured")

	if cfg.Once {
		if !client.Fetch(ctx) {
			os.Exit(1) //nolint:gocritic // telemetry flush is best-effort
		}
		logSummary(log, client)
		return
	}

	poll(ctx, log, client, cfg.PollInterval)
	log.Info().Msg("onecall stopped")
}

// poll fetches immediately and then once per interval until ctx is done.
func poll(ctx context.Context, log zerolog.Logger, client *openweathermap.Client, interval time.Duration) {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			if !errors.Is(err, context.Canceled) && ctx.Err() == nil {
				log.Error().Err(err).Msg("poll wait failed")
			}
			return
		}
		if client.Fetch(ctx) {
			logSummary(log, client)
		}
	}
}

func logSummary(log zerolog.Logger, client *openweathermap.Client) {
	zone := client.Zone()

	if client.Sections().Current {
		now := client.Current()
		log.Info().
			Time("observed", now.Time.In(zone)).
			Float64("temperature", now.Temperature).
			Float64("feels_like", now.FeelsLike).
			Float64("humidity", now.Humidity).
			Float64("wind_speed", now.WindSpeed).
			Str("conditions", now.Conditions.Description).
			Stringer("icon", now.Conditions.Icon).
			Msg("current weather")
	}

	if minutes := client.Minutely(); len(minutes) > 0 {
		var total float64
		for _, m := range minutes {
			total += m.Precipitation
		}
		log.Info().
			Int("minutes", len(minutes)).
			Float64("precipitation", total).
			Msg("minutely forecast")
	}

	for _, h := range client.Hourly() {
		log.Debug().
			Time("time", h.Time.In(zone)).
			Float64("temperature", h.Temperature).
			Float64("pop", h.PrecipProb).
			Stringer("icon", h.Conditions.Icon).
			Msg("hourly forecast")
	}

	for _, d := range client.Daily() {
		log.Info().
			Time("date", d.Time.In(zone)).
			Float64("min", d.Temperature.Min).
			Float64("max", d.Temperature.Max).
			Float64("pop", d.PrecipProb).
			Dur("daylight", d.Daylight()).
			Str("summary", d.Summary).
			Stringer("icon", d.Conditions.Icon).
			Msg("daily forecast")
	}
}
