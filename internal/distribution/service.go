// Package distribution reports how often each type code was derived across
// completed runs.
package distribution

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/function-o-meter/internal/cache"
	"github.com/ZanzyTHEbar/function-o-meter/internal/database"
	"github.com/ZanzyTHEbar/function-o-meter/internal/encoding"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

// Store is the aggregate query the service needs.
type Store interface {
	TypeCounts(ctx context.Context, scheme typology.Scheme) ([]database.TypeCount, error)
}

// Entry is one type code and its share of completed runs.
type Entry struct {
	Code  string  `json:"code"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Distribution is the breakdown for one scheme.
type Distribution struct {
	Scheme      typology.Scheme `json:"scheme"`
	Total       int             `json:"total"`
	Unresolved  int             `json:"unresolved"`
	Entries     []Entry         `json:"entries"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// Service handles distribution queries
type Service struct {
	store Store
	cache *cache.Cache
	now   func() time.Time
}

// NewService creates a service caching each scheme's result for ttl.
func NewService(store Store, ttl time.Duration) *Service {
	return NewServiceWithCache(store, cache.NewCache(len(typology.Schemes), ttl))
}

// NewServiceWithCache creates a service over an existing cache.
func NewServiceWithCache(store Store, c *cache.Cache) *Service {
	return &Service{store: store, cache: c, now: time.Now}
}

func cacheKey(scheme typology.Scheme) string {
	return "distribution:" + string(scheme)
}

// Get returns the distribution for scheme, from cache when fresh.
func (s *Service) Get(ctx context.Context, scheme typology.Scheme) (*Distribution, error) {
	if _, err := typology.ParseScheme(string(scheme)); err != nil {
		return nil, err
	}

	key := cacheKey(scheme)
	if data, found := s.cache.Get(key); found {
		var d Distribution
		err := encoding.Unmarshal(data, &d)
		if err == nil {
			return &d, nil
		}
		slog.Error("Failed to decode cached distribution", "error", err, "scheme", scheme)
	}

	counts, err := s.store.TypeCounts(ctx, scheme)
	if err != nil {
		return nil, fmt.Errorf("failed to load type counts: %w", err)
	}

	d := build(scheme, counts, s.now().UTC())

	if data, err := encoding.Marshal(d); err != nil {
		slog.Error("Failed to encode distribution for cache", "error", err, "scheme", scheme)
	} else {
		s.cache.Set(key, data)
	}

	slog.Debug("Distribution computed", "scheme", scheme, "total", d.Total, "codes", len(d.Entries))
	return d, nil
}

func build(scheme typology.Scheme, counts []database.TypeCount, now time.Time) *Distribution {
	d := &Distribution{Scheme: scheme, Entries: make([]Entry, 0, len(counts)), GeneratedAt: now}
	for _, c := range counts {
		d.Total += c.Count
		if strings.Contains(c.Code, typology.Unresolved) {
			d.Unresolved += c.Count
		}
	}
	for _, c := range counts {
		share := 0.0
		if d.Total > 0 {
			share = math.Round(float64(c.Count)/float64(d.Total)*10000) / 10000
		}
		d.Entries = append(d.Entries, Entry{Code: c.Code, Count: c.Count, Share: share})
	}
	return d
}

// Invalidate drops every cached distribution. Call it whenever a run
// completes or is deleted.
func (s *Service) Invalidate() {
	s.cache.Clear()
	slog.Debug("Distribution cache invalidated")
}

// GetCacheStats returns cache statistics
func (s *Service) GetCacheStats() map[string]interface{} {
	return s.cache.Stats()
}
