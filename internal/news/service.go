package news

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carhub-app/carhub-backend/pkg/config"
	"github.com/carhub-app/carhub-backend/pkg/logger"
	"github.com/carhub-app/carhub-backend/pkg/redis"
)

type feedFetcher interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
}

type cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	CacheKey(parts ...string) string
}

// Service serves the automotive news feed with a short-lived cache in
// front of the upstream provider.
type Service interface {
	Latest(ctx context.Context) ([]Article, error)
}

// ServiceParams bundles the dependencies for the news service.
type ServiceParams struct {
	Client feedFetcher
	Cache  cache
	Config config.NewsConfig
	Logger *logger.Logger
}

type service struct {
	client feedFetcher
	cache  cache
	cfg    config.NewsConfig
	logg   *logger.Logger
}

// NewService builds a news service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Client == nil {
		return nil, fmt.Errorf("news client required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client: params.Client,
		cache:  params.Cache,
		cfg:    params.Config,
		logg:   params.Logger,
	}, nil
}

func (s *service) Latest(ctx context.Context) ([]Article, error) {
	if articles, ok := s.fromCache(ctx); ok {
		return articles, nil
	}

	articles, err := s.client.Fetch(ctx, s.cfg.MaxArticles)
	if err != nil {
		return nil, err
	}

	s.store(ctx, articles)
	return articles, nil
}

func (s *service) fromCache(ctx context.Context) ([]Article, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, s.cacheKey())
	if err != nil {
		if !redis.IsNil(err) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "news cache read failed")
		}
		return nil, false
	}

	var articles []Article
	if err := json.Unmarshal([]byte(raw), &articles); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "news cache payload corrupt")
		return nil, false
	}
	return articles, true
}

func (s *service) store(ctx context.Context, articles []Article) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(articles)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "news cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(), payload, s.cfg.CacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "news cache write failed")
	}
}

func (s *service) cacheKey() string {
	return s.cache.CacheKey("news", "latest")
}
