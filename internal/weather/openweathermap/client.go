package openweathermap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wxpanel/onecall/internal/provider/resilience"
	"github.com/wxpanel/onecall/internal/telemetry"
	"github.com/wxpanel/onecall/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultOneCallURL is the OpenWeatherMap One Call API 3.0 endpoint.
	DefaultOneCallURL = "http://api.openweathermap.org/data/3.0/onecall"

	instrumentationName = "github.com/wxpanel/onecall/internal/weather/openweathermap"
)

// Worst-case parser working memory per response section, in bytes.
// The header (lat, lon, timezone) is always returned.
const (
	headerSize   = 114
	currentSize  = 511
	minutelySize = 2970
	hourlySize   = 16479
	dailySize    = 4815
)

// Fetch errors. They are logged and recorded, Fetch itself only reports success.
var (
	ErrTransport         = errors.New("transport failure")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrResponseTooLarge  = errors.New("response exceeds parse capacity")
	ErrMalformedResponse = errors.New("malformed response")
)

// Sections selects which parts of the forecast are requested and how many
// entries of each are kept.
type Sections struct {
	Current bool
	Minutes uint
	Hours   uint
	Days    uint
}

// clamp limits every count to what the API returns.
func (s Sections) clamp() Sections {
	return Sections{
		Current: s.Current,
		Minutes: min(s.Minutes, weather.MaxMinutes),
		Hours:   min(s.Hours, weather.MaxHours),
		Days:    min(s.Days, weather.MaxDays),
	}
}

// ClientConfig holds configuration for the One Call client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// Units is the unit system values are returned in. Empty means standard.
	Units weather.Units

	// Sections is the initial section selection passed to Configure.
	Sections Sections

	// OneCallURL is the One Call endpoint (optional, defaults to One Call 3.0).
	OneCallURL string

	// MaxResponseBytes rejects larger bodies as unparseable.
	// Default: four times JSONSize.
	MaxResponseBytes int64

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Tracer wraps each fetch in a span (optional, defaults to the global tracer).
	Tracer trace.Tracer

	// Metrics records fetch outcomes (optional).
	Metrics *telemetry.FetchMetrics

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client fetches One Call forecasts for a single location and keeps the
// latest successful result. It is not safe for concurrent use.
type Client struct {
	apiKey   string
	units    weather.Units
	sections Sections
	estimate int

	lat float64
	lon float64

	oneCallURL       string
	maxResponseBytes int64
	httpClient       *resilience.Client
	tracer           trace.Tracer
	metrics          *telemetry.FetchMetrics
	logger           zerolog.Logger

	current  weather.CurrentWeather
	minutely []weather.MinuteForecast
	hourly   []weather.HourlyForecast
	daily    []weather.DailyForecast

	timezone       string
	timezoneOffset int
}

// NewClient creates a new One Call client configured with cfg.Sections.
func NewClient(cfg ClientConfig) *Client {
	oneCallURL := cfg.OneCallURL
	if oneCallURL == "" {
		oneCallURL = DefaultOneCallURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}

	c := &Client{
		oneCallURL:       oneCallURL,
		maxResponseBytes: cfg.MaxResponseBytes,
		httpClient:       httpClient,
		tracer:           tracer,
		metrics:          cfg.Metrics,
		logger:           cfg.Logger,
	}
	c.Configure(cfg.APIKey, cfg.Units, cfg.Sections)

	return c
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Configure sets the API key, units and requested sections. Counts above the
// API limits are clamped and a zero count disables its section. Record
// storage is reallocated to the clamped sizes and previous data is dropped.
func (c *Client) Configure(apiKey string, units weather.Units, sections Sections) {
	clamped := sections.clamp()
	if clamped != sections {
		c.logger.Warn().
			Uint("minutes", sections.Minutes).
			Uint("hours", sections.Hours).
			Uint("days", sections.Days).
			Msg("requested forecast counts exceed API limits, clamping")
	}

	c.apiKey = apiKey
	c.units = weather.ParseUnits(string(units))
	c.sections = clamped
	c.estimate = headerSize
	c.current = weather.CurrentWeather{}
	c.minutely, c.hourly, c.daily = nil, nil, nil

	if clamped.Current {
		c.estimate += currentSize
	}
	if clamped.Minutes > 0 {
		c.estimate += minutelySize
		c.minutely = make([]weather.MinuteForecast, clamped.Minutes)
	}
	if clamped.Hours > 0 {
		c.estimate += hourlySize
		c.hourly = make([]weather.HourlyForecast, clamped.Hours)
	}
	if clamped.Days > 0 {
		c.estimate += dailySize
		c.daily = make([]weather.DailyForecast, clamped.Days)
	}

	c.logger.Debug().
		Bool("current", clamped.Current).
		Uint("minutes", clamped.Minutes).
		Uint("hours", clamped.Hours).
		Uint("days", clamped.Days).
		Str("units", string(c.units)).
		Msg("forecast sections configured")
}

// SetLocation sets the coordinates to fetch. An out-of-range coordinate is
// replaced with 0.
func (c *Client) SetLocation(lat, lon float64) {
	if lat > 90 || lat < -90 {
		c.logger.Warn().Float64("lat", lat).Msg("latitude out of range, using 0")
		lat = 0
	}
	if lon > 180 || lon < -180 {
		c.logger.Warn().Float64("lon", lon).Msg("longitude out of range, using 0")
		lon = 0
	}

	c.lat, c.lon = lat, lon

	c.logger.Debug().
		Float64("lat", c.lat).
		Float64("lon", c.lon).
		Msg("location set")
}

// Location returns the stored coordinates.
func (c *Client) Location() (lat, lon float64) {
	return c.lat, c.lon
}

// Sections returns the clamped section selection.
func (c *Client) Sections() Sections {
	return c.sections
}

// APICall returns the request URL for the current configuration.
func (c *Client) APICall() string {
	return c.apiCall(c.apiKey)
}

func (c *Client) apiCall(apiKey string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s?lat=%.2f&lon=%.2f&exclude=alerts", c.oneCallURL, c.lat, c.lon)

	if !c.sections.Current {
		b.WriteString(",current")
	}
	if c.sections.Days == 0 {
		b.WriteString(",daily")
	}
	if c.sections.Hours == 0 {
		b.WriteString(",hourly")
	}
	if c.sections.Minutes == 0 {
		b.WriteString(",minutely")
	}

	switch c.units {
	case weather.UnitsImperial:
		b.WriteString("&units=imperial")
	case weather.UnitsMetric:
		b.WriteString("&units=metric")
	}

	b.WriteString("&APPID=")
	b.WriteString(apiKey)

	return b.String()
}

// JSONSize returns the parse buffer capacity for the enabled sections: the
// summed worst-case estimate rounded up to the next higher power of two.
func (c *Client) JSONSize() int {
	return 1 << bits.Len(uint(c.estimate))
}

// Fetch calls the API and replaces the stored records with the response.
// It returns false on transport or parse failure, in which case the records
// from the previous successful fetch are kept.
func (c *Client) Fetch(ctx context.Context) bool {
	fetchID := uuid.NewString()
	logger := c.logger.With().Str("fetch_id", fetchID).Logger()

	ctx, span := c.tracer.Start(ctx, "onecall.fetch", trace.WithAttributes(
		attribute.String("fetch.id", fetchID),
		attribute.Float64("location.lat", c.lat),
		attribute.Float64("location.lon", c.lon),
	))
	defer span.End()

	start := time.Now()
	n, err := c.fetch(ctx, logger)
	elapsed := time.Since(start)

	outcome := outcomeOf(err)
	c.metrics.Record(ctx, outcome, elapsed, n)
	span.SetAttributes(
		attribute.String("fetch.outcome", outcome),
		attribute.Int64("response.size", n),
	)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).
			Str("outcome", outcome).
			Dur("duration", elapsed).
			Msg("weather fetch failed")
		return false
	}

	logger.Info().
		Int64("bytes", n).
		Dur("duration", elapsed).
		Msg("weather fetched")
	return true
}

func (c *Client) fetch(ctx context.Context, logger zerolog.Logger) (int64, error) {
	capacity := c.JSONSize()

	logger.Debug().
		Str("url", c.apiCall("****")).
		Int("capacity", capacity).
		Msg("requesting one call")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APICall(), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: creating request: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full request URL including the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = c.apiCall("****")
		}
		return 0, fmt.Errorf("%w: executing request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	limit := c.maxResponseBytes
	if limit <= 0 {
		limit = 4 * int64(capacity)
	}

	buf := bytes.NewBuffer(make([]byte, 0, capacity))
	n, err := buf.ReadFrom(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return n, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}
	if n > limit {
		return n, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, limit)
	}

	logger.Trace().Str("body", buf.String()).Msg("one call response")

	var payload oneCallResponse
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return n, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	c.store(&payload)
	return n, nil
}

// store overwrites every enabled section. Entries the payload lacks become
// zero records so each section keeps its configured length.
func (c *Client) store(p *oneCallResponse) {
	c.timezone = p.Timezone
	c.timezoneOffset = p.TimezoneOffset

	if c.sections.Current {
		c.current = p.Current.toCurrent()
	}
	for i := range c.minutely {
		c.minutely[i] = entry(p.Minutely, i).toMinute()
	}
	for i := range c.hourly {
		c.hourly[i] = entry(p.Hourly, i).toHourly()
	}
	for i := range c.daily {
		c.daily[i] = entry(p.Daily, i).toDaily()
	}
}

// Current returns the current weather from the last successful fetch.
func (c *Client) Current() weather.CurrentWeather {
	return c.current
}

// Minutely returns a copy of the minute forecast, nil when disabled.
func (c *Client) Minutely() []weather.MinuteForecast {
	return slices.Clone(c.minutely)
}

// Hourly returns a copy of the hourly forecast, nil when disabled.
func (c *Client) Hourly() []weather.HourlyForecast {
	return slices.Clone(c.hourly)
}

// Daily returns a copy of the daily forecast, nil when disabled.
func (c *Client) Daily() []weather.DailyForecast {
	return slices.Clone(c.daily)
}

// Zone returns the location's time zone as reported by the last successful
// fetch, or UTC before the first one.
func (c *Client) Zone() *time.Location {
	if c.timezone == "" && c.timezoneOffset == 0 {
		return time.UTC
	}
	return time.FixedZone(c.timezone, c.timezoneOffset)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeSuccess
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrResponseTooLarge):
		return telemetry.OutcomeParseError
	default:
		return telemetry.OutcomeTransportError
	}
}

func entry[T any](items []T, i int) T {
	if i < len(items) {
		return items[i]
	}
	var zero T
	return zero
}
