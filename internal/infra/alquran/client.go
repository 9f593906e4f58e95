// Package alquran fetches verse text from the api.alquran.cloud REST API and
// builds recitation audio links.
package alquran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/aliskhannn/hifz-quiz-bot/internal/domain/entities"
)

const (
	DefaultBaseURL      = "https://api.alquran.cloud/v1"
	DefaultAudioBaseURL = "https://cdn.islamic.network/quran/audio/128"
	DefaultEdition      = "quran-uthmani"
)

var (
	// ErrNotFound is returned when the API rejects the requested scope.
	ErrNotFound = errors.New("content not found")
	// ErrEmptyRange is returned when no page of a range yielded any verse.
	ErrEmptyRange = errors.New("page range returned no ayahs")
)

// Cache stores raw content between requests.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Config struct {
	BaseURL      string
	AudioBaseURL string
	Edition      string
	Timeout      time.Duration
	CacheTTL     time.Duration
	MaxParallel  int // concurrent page requests for a range
}

// Client is a content API client.
type Client struct {
	cfg        Config
	http       *http.Client
	cache      Cache
	logger     *zap.Logger
	retryDelay time.Duration
}

// New creates a client. cache may be nil.
func New(cfg Config, cache Cache, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.AudioBaseURL == "" {
		cfg.AudioBaseURL = DefaultAudioBaseURL
	}
	if cfg.Edition == "" {
		cfg.Edition = DefaultEdition
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxParallel <= 0 {
		cfg.MaxParallel = 4
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.AudioBaseURL = strings.TrimRight(cfg.AudioBaseURL, "/")

	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		logger:     logger,
		retryDelay: retryBaseDelay,
	}
}

type envelope struct {
	Code   int             `json:"code"`
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type scopeData struct {
	Ayahs []ayahDTO `json:"ayahs"`
}

type ayahDTO struct {
	Number        int    `json:"number"`
	Text          string `json:"text"`
	NumberInSurah int    `json:"numberInSurah"`
	Juz           int    `json:"juz"`
	Page          int    `json:"page"`
}

// FetchAyahs returns the verses of scope in mushaf order.
func (c *Client) FetchAyahs(ctx context.Context, scope entities.Scope) ([]entities.Ayah, error) {
	switch scope.Type {
	case entities.ScopeJuz, entities.ScopeSurah, entities.ScopePage:
		n, err := scope.Number()
		if err != nil {
			return nil, err
		}
		return c.fetch(ctx, strings.ToLower(string(scope.Type)), n)

	case entities.ScopePageRange:
		start, end, err := scope.PageRange()
		if err != nil {
			return nil, err
		}
		return c.fetchRange(ctx, start, end)

	default:
		return nil, fmt.Errorf("%w: unknown type %q", entities.ErrInvalidScope, scope.Type)
	}
}

// fetchRange requests every page concurrently. Failed pages are logged and
// contribute no verses.
func (c *Client) fetchRange(ctx context.Context, start, end int) ([]entities.Ayah, error) {
	results := make([][]entities.Ayah, end-start+1)

	var g errgroup.Group
	g.SetLimit(c.cfg.MaxParallel)

	for i := range results {
		page := start + i
		g.Go(func() error {
			ayahs, err := c.fetch(ctx, "page", page)
			if err != nil {
				c.logger.Warn("failed to fetch page", zap.Int("page", page), zap.Error(err))
				return nil
			}
			results[i] = ayahs
			return nil
		})
	}
	_ = g.Wait()

	var merged []entities.Ayah
	for _, ayahs := range results {
		merged = append(merged, ayahs...)
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("%w: pages %d-%d", ErrEmptyRange, start, end)
	}
	return merged, nil
}

func (c *Client) cacheKey(kind string, n int) string {
	return fmt.Sprintf("%s:%s:%d", c.cfg.Edition, kind, n)
}

func (c *Client) fetch(ctx context.Context, kind string, n int) ([]entities.Ayah, error) {
	key := c.cacheKey(kind, n)
	if ayahs, ok := c.fromCache(ctx, key); ok {
		return ayahs, nil
	}

	url := fmt.Sprintf("%s/%s/%d/%s", c.cfg.BaseURL, kind, n, c.cfg.Edition)
	body, status, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %d: %w", kind, n, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s %d (status %d): %w", kind, n, status, err)
	}

	switch {
	case env.Code == http.StatusOK:
	case env.Code >= 400 && env.Code < 500:
		return nil, fmt.Errorf("%w: %s %d: %s", ErrNotFound, kind, n, env.Status)
	default:
		return nil, fmt.Errorf("fetch %s %d: api code %d: %s", kind, n, env.Code, env.Status)
	}

	var data scopeData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode %s %d data: %w", kind, n, err)
	}

	ayahs := make([]entities.Ayah, 0, len(data.Ayahs))
	for _, a := range data.Ayahs {
		ayahs = append(ayahs, entities.Ayah{
			Number:        a.Number,
			Text:          normalizeText(a.Text),
			NumberInSurah: a.NumberInSurah,
			Page:          a.Page,
			Juz:           a.Juz,
		})
	}

	c.toCache(ctx, key, ayahs)
	return ayahs, nil
}

func (c *Client) fromCache(ctx context.Context, key string) ([]entities.Ayah, bool) {
	if c.cache == nil {
		return nil, false
	}

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var ayahs []entities.Ayah
	if err := json.Unmarshal(raw, &ayahs); err != nil || len(ayahs) == 0 {
		c.logger.Warn("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return ayahs, true
}

func (c *Client) toCache(ctx context.Context, key string, ayahs []entities.Ayah) {
	if c.cache == nil || len(ayahs) == 0 {
		return
	}

	raw, err := json.Marshal(ayahs)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cfg.CacheTTL); err != nil {
		c.logger.Warn("failed to cache content", zap.String("key", key), zap.Error(err))
	}
}

// AudioURL returns the recitation of a verse by narrator.
func (c *Client) AudioURL(narrator string, ayahNumber int) string {
	return fmt.Sprintf("%s/%s/%d.mp3", c.cfg.AudioBaseURL, narrator, ayahNumber)
}

func normalizeText(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(s))
}
