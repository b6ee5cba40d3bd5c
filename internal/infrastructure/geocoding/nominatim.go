package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/config"
	"github.com/Yassinemathlouthi/skillswap/internal/infrastructure/cache"
)

var (
	ErrGeocodingDisabled = errors.New("geocoding disabled")
	ErrNoResults         = errors.New("no geocoding results")
)

// Result is a resolved place with WGS84 coordinates.
type Result struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type Geocoder interface {
	Forward(ctx context.Context, query string) (Result, error)
	Reverse(ctx context.Context, lat, lon float64) (Result, error)
}

// NominatimClient geocodes against a Nominatim-compatible endpoint, with
// results cached in Redis to respect the public instance's rate limits.
type NominatimClient struct {
	baseURL   string
	userAgent string
	client    *http.Client
	cache     *cache.Redis
	logger    *log.Logger
}

func NewNominatimClient(cfg config.GeocodingConfig, rc *cache.Redis, logger *log.Logger) *NominatimClient {
	if !cfg.Enabled {
		return nil
	}
	return &NominatimClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: 5 * time.Second},
		cache:     rc,
		logger:    logger,
	}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Forward resolves a free-form location string to coordinates.
func (c *NominatimClient) Forward(ctx context.Context, query string) (Result, error) {
	if c == nil {
		return Result{}, ErrGeocodingDisabled
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrNoResults
	}

	cacheKey := "geocode:fwd:" + strings.ToLower(query)
	var cached Result
	if hit, _ := c.cache.GetJSON(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	var places []nominatimPlace
	if err := c.get(ctx, c.baseURL+"/search?"+q.Encode(), &places); err != nil {
		return Result{}, err
	}
	if len(places) == 0 {
		return Result{}, ErrNoResults
	}

	res, err := placeToResult(places[0])
	if err != nil {
		return Result{}, err
	}

	_ = c.cache.SetJSON(ctx, cacheKey, res, 24*time.Hour)
	return res, nil
}

// Reverse resolves coordinates to a display name.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (Result, error) {
	if c == nil {
		return Result{}, ErrGeocodingDisabled
	}

	cacheKey := fmt.Sprintf("geocode:rev:%.4f:%.4f", lat, lon)
	var cached Result
	if hit, _ := c.cache.GetJSON(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")

	var place nominatimPlace
	if err := c.get(ctx, c.baseURL+"/reverse?"+q.Encode(), &place); err != nil {
		return Result{}, err
	}
	if place.DisplayName == "" {
		return Result{}, ErrNoResults
	}

	res, err := placeToResult(place)
	if err != nil {
		return Result{}, err
	}

	_ = c.cache.SetJSON(ctx, cacheKey, res, 24*time.Hour)
	return res, nil
}

func (c *NominatimClient) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("geocoding request failed: status=%d", resp.StatusCode)
		if c.logger != nil {
			c.logger.Printf("[Geocoding] request error endpoint=%s status=%d", endpoint, resp.StatusCode)
		}
		return err
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func placeToResult(p nominatimPlace) (Result, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("parse longitude: %w", err)
	}
	return Result{DisplayName: p.DisplayName, Latitude: lat, Longitude: lon}, nil
}

var _ Geocoder = (*NominatimClient)(nil)
