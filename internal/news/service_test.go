package news

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/carhub-app/carhub-backend/pkg/config"
	"github.com/carhub-app/carhub-backend/pkg/logger"
)

func TestLatestFetchesAndCaches(t *testing.T) {
	fetcher := &stubFetcher{articles: []Article{{Title: "EV news", URL: "https://example.com/ev"}}}
	cache := newStubCache()
	svc := mustService(t, fetcher, cache)

	articles, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected one article, got %d", len(articles))
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", fetcher.calls)
	}
	if _, ok := cache.values["carhub:cache:news:latest"]; !ok {
		t.Fatalf("expected cache write, keys: %v", cache.values)
	}

	// Second call must be served from cache.
	if _, err := svc.Latest(context.Background()); err != nil {
		t.Fatalf("latest from cache: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected cache hit, upstream called %d times", fetcher.calls)
	}
}

func TestLatestIgnoresCorruptCache(t *testing.T) {
	fetcher := &stubFetcher{articles: []Article{{Title: "EV news", URL: "https://example.com/ev"}}}
	cache := newStubCache()
	cache.values["carhub:cache:news:latest"] = "{not json"
	svc := mustService(t, fetcher, cache)

	articles, err := svc.Latest(context.Background())
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if len(articles) != 1 || fetcher.calls != 1 {
		t.Fatalf("expected upstream fallback on corrupt cache")
	}
}

func TestLatestWorksWithoutCache(t *testing.T) {
	fetcher := &stubFetcher{articles: []Article{{Title: "EV news", URL: "https://example.com/ev"}}}
	svc := mustService(t, fetcher, nil)

	if _, err := svc.Latest(context.Background()); err != nil {
		t.Fatalf("latest without cache: %v", err)
	}
}

func mustService(t *testing.T, fetcher feedFetcher, c cache) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "news-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(ServiceParams{
		Client: fetcher,
		Cache:  c,
		Config: config.NewsConfig{CacheTTL: time.Minute, MaxArticles: 20},
		Logger: logg,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubFetcher struct {
	articles []Article
	err      error
	calls    int
}

func (s *stubFetcher) Fetch(ctx context.Context, limit int) ([]Article, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.articles, nil
}

type stubCache struct {
	values map[string]string
}

func newStubCache() *stubCache {
	return &stubCache{values: map[string]string{}}
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		s.values[key] = string(v)
	case string:
		s.values[key] = v
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		s.values[key] = string(raw)
	}
	return nil
}

func (s *stubCache) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *stubCache) CacheKey(parts ...string) string {
	return "carhub:cache:" + strings.Join(parts, ":")
}
