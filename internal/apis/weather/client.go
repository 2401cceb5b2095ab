// Package weather is a client for the OpenWeatherMap current-weather and
// forecast endpoints. Responses are cached so repeated questions in one
// session do not burn through the API quota.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/acelabs/ace/internal/ports"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// DefaultCacheTTL matches the upstream refresh cadence; OpenWeatherMap data
// barely changes inside a three hour window.
const DefaultCacheTTL = 3 * time.Hour

var (
	// ErrNoLocation is returned when no location was given and no home
	// location is configured.
	ErrNoLocation = errors.New("no location given")

	// ErrInvalidKey is returned on HTTP 401 from the API.
	ErrInvalidKey = errors.New("invalid api key")

	// ErrNotFound is returned on HTTP 404, meaning the location is unknown.
	ErrNotFound = errors.New("location not found")

	// ErrRateLimited is returned on HTTP 429.
	ErrRateLimited = errors.New("api rate limit exceeded")
)

// Report is a normalized weather answer for a single location.
type Report struct {
	Location  string  `json:"location"`
	Condition string  `json:"condition"`
	Temp      float64 `json:"temp"`
	Units     string  `json:"units"`
}

// Client talks to OpenWeatherMap.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	home    string
	units   string
	cache   ports.Cache
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHomeLocation sets the fallback location used when a question names no
// place.
func WithHomeLocation(home string) Option {
	return func(c *Client) {
		c.home = home
	}
}

// WithUnits sets the temperature units ("metric" or "imperial").
func WithUnits(units string) Option {
	return func(c *Client) {
		c.units = units
	}
}

// WithCache enables response caching.
func WithCache(cache ports.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.ttl = ttl
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		units:   "metric",
		ttl:     DefaultCacheTTL,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if c.http == nil {
		c.http = retryablehttp.NewClient()
		c.http.RetryMax = 2
		c.http.Logger = nil
		// Retry transport failures only. Status codes, 429 included, must
		// reach the caller so they map to the right reply.
		c.http.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
			if err != nil {
				return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
			}
			return false, nil
		}
	}

	return c
}

// statusCode tolerates the API returning "cod" as a number on one endpoint
// and a string on another.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*s = statusCode(n)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("unexpected cod value %s", data)
	}
	if _, err := fmt.Sscanf(str, "%d", &n); err != nil {
		return fmt.Errorf("unexpected cod value %q", str)
	}
	*s = statusCode(n)
	return nil
}

type currentResponse struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

type forecastResponse struct {
	Cod  statusCode `json:"cod"`
	List []struct {
		DtTxt   string `json:"dt_txt"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

// Current returns the current weather for the location, falling back to the
// configured home location when location is empty.
func (c *Client) Current(ctx context.Context, location string) (*Report, error) {
	location, err := c.resolve(location)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, "/weather", location)
	if err != nil {
		return nil, err
	}

	var resp currentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}
	if err := statusError(int(resp.Cod)); err != nil {
		return nil, err
	}
	if len(resp.Weather) == 0 {
		return nil, errors.New("weather response missing conditions")
	}

	return &Report{
		Location:  titleCase(location),
		Condition: resp.Weather[0].Description,
		Temp:      resp.Main.Temp,
		Units:     c.unitSymbol(),
	}, nil
}

// Tomorrow returns tomorrow's weather for the location: the most common
// forecast condition and the mean of the forecast temperatures.
func (c *Client) Tomorrow(ctx context.Context, location string) (*Report, error) {
	location, err := c.resolve(location)
	if err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, "/forecast", location)
	if err != nil {
		return nil, err
	}

	var resp forecastResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}
	if err := statusError(int(resp.Cod)); err != nil {
		return nil, err
	}

	tomorrow := c.now().AddDate(0, 0, 1).Format("2006-01-02")

	var (
		temps      []float64
		counts     = map[string]int{}
		order      []string
		topCount   int
		topWeather string
	)
	for _, slot := range resp.List {
		if !strings.HasPrefix(slot.DtTxt, tomorrow) || len(slot.Weather) == 0 {
			continue
		}
		desc := slot.Weather[0].Description
		if counts[desc] == 0 {
			order = append(order, desc)
		}
		counts[desc]++
		temps = append(temps, slot.Main.Temp)
	}
	if len(temps) == 0 {
		return nil, errors.New("forecast response has no slots for tomorrow")
	}

	// Ties go to the condition seen first, matching the forecast order.
	for _, desc := range order {
		if counts[desc] > topCount {
			topCount = counts[desc]
			topWeather = desc
		}
	}

	var sum float64
	for _, t := range temps {
		sum += t
	}
	mean := math.Round(sum/float64(len(temps))*100) / 100

	return &Report{
		Location:  titleCase(location),
		Condition: topWeather,
		Temp:      mean,
		Units:     c.unitSymbol(),
	}, nil
}

func (c *Client) resolve(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		location = c.home
	}
	if location == "" {
		return "", ErrNoLocation
	}
	return location, nil
}

func (c *Client) unitSymbol() string {
	if c.units == "imperial" {
		return "F"
	}
	return "C"
}

// fetch performs the HTTP call, going through the cache when one is
// configured. Error status bodies are cached too; a bad key does not get
// retried every turn.
func (c *Client) fetch(ctx context.Context, path, location string) ([]byte, error) {
	cacheKey := fmt.Sprintf("weather:%s:%s:%s", path, strings.ToLower(location), c.units)

	if c.cache != nil {
		if cached, ok, err := c.cache.Get(ctx, cacheKey); err == nil && ok {
			c.logger.Debug("weather cache hit", "key", cacheKey)
			return cached, nil
		}
	}

	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", c.units)

	endpoint := c.baseURL + path + "?" + query.Encode()
	c.logger.Debug("fetching weather", "url", strings.Replace(endpoint, c.apiKey, "***", 1))

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach weather api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body, c.ttl); err != nil {
			c.logger.Warn("failed to cache weather response", "error", err)
		}
	}

	return body, nil
}

func statusError(code int) error {
	switch code {
	case 200:
		return nil
	case 401:
		return ErrInvalidKey
	case 404:
		return ErrNotFound
	case 429:
		return ErrRateLimited
	default:
		return fmt.Errorf("weather api returned status %d", code)
	}
}

// titleCase uppercases the first letter of each word, so "new york" renders
// as "New York" in replies.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(words, " ")
}
