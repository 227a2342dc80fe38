package taxtable

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Registry resolves the tables for a tax year: first the embedded ones, then
// those already fetched, then the remote registry when one is configured.
type Registry struct {
	url      string
	client   *http.Client
	cache    sync.Map
	embedded map[int]*Year
	logger   *zap.Logger
}

func NewRegistry(url string, logger *zap.Logger) (*Registry, error) {
	embedded, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	r := &Registry{url: url, embedded: embedded, logger: logger.Named("taxtable")}
	if url != "" {
		r.client = &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	return r, nil
}

// Years lists the embedded and cached years.
func (r *Registry) Years() []int {
	all := make(map[int]*Year, len(r.embedded))
	for k, v := range r.embedded {
		all[k] = v
	}
	r.cache.Range(func(k, v any) bool {
		all[k.(int)] = v.(*Year)
		return true
	})
	return sortedYears(all)
}

// Year returns the tables for a year or ErrYearNotSupported. It never falls
// back to another year.
func (r *Registry) Year(ctx context.Context, year int) (*Year, error) {
	if y, ok := r.embedded[year]; ok {
		return y, nil
	}
	if y, ok := r.cache.Load(year); ok {
		return y.(*Year), nil
	}
	if r.client == nil {
		return nil, fmt.Errorf("%w: %d", ErrYearNotSupported, year)
	}
	y, err := r.fetch(ctx, year)
	if err != nil {
		r.logger.Warn("remote tax table lookup failed", zap.Int("year", year), zap.Error(err))
		return nil, err
	}
	r.cache.Store(year, y)
	return y, nil
}

// Prefetch loads several years concurrently and reports the ones that failed.
func (r *Registry) Prefetch(ctx context.Context, years []int) map[int]error {
	failed := make(map[int]error)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, year := range years {
		wg.Add(1)
		go func(year int) {
			defer wg.Done()
			if _, err := r.Year(ctx, year); err != nil {
				mu.Lock()
				failed[year] = err
				mu.Unlock()
			}
		}(year)
	}
	wg.Wait()
	return failed
}

func (r *Registry) fetch(ctx context.Context, year int) (*Year, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"/years/"+strconv.Itoa(year), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrYearNotSupported, year)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("tax table registry: unexpected status %d for year %d", resp.StatusCode, year)
	}

	var raw rawYear
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tax table registry: decode year %d: %w", year, err)
	}
	if raw.Year != year {
		return nil, fmt.Errorf("tax table registry: asked for %d, got %d", year, raw.Year)
	}
	return raw.build()
}
