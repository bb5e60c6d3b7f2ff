package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// SheetURL is the CSV export of the spreadsheet that Make keeps up to date.
const SheetURL = "https://docs.google.com/spreadsheets/d/1-UgtsC1edLQqidYuPTGIywS9D8sDxESOW5h3ge9v2QY/export?format=csv"

const DefaultTTL = 600 * time.Second

const flightKey = "dataset"

var ErrUnconfigured = errors.New("source location is not a network address")

type cacheEntry struct {
	dataset   *Dataset
	fetchedAt time.Time
}

// Loader fetches the sheet and keeps the result for a fixed TTL. Every
// failure collapses to an empty Dataset, which is cached like any other result.
type Loader struct {
	source     string
	httpClient *http.Client
	parser     *Parser
	userAgent  string
	ttl        time.Duration
	now        func() time.Time

	mu         sync.RWMutex
	entry      *cacheEntry
	generation uint64
	flight     singleflight.Group
}

func NewLoader(source string, httpClient *http.Client, userAgent string) *Loader {
	return &Loader{
		source:     source,
		httpClient: httpClient,
		parser:     NewParser(),
		userAgent:  userAgent,
		ttl:        DefaultTTL,
		now:        time.Now,
	}
}

func (l *Loader) Load(ctx context.Context) *Dataset {
	if dataset, ok := l.cached(); ok {
		return dataset
	}

	// The fetch outlives the request that triggered it, so one client
	// hanging up does not cache an empty result for everyone.
	fetchCtx := context.WithoutCancel(ctx)

	result, _, _ := l.flight.Do(flightKey, func() (any, error) {
		if dataset, ok := l.cached(); ok {
			return dataset, nil
		}

		generation := l.currentGeneration()

		dataset, err := l.Fetch(fetchCtx)
		if err != nil {
			if errors.Is(err, ErrUnconfigured) {
				slog.Debug("Sheet source not configured", "source", l.source)
			} else {
				slog.Warn("Failed to load sheet", "source", l.source, "error", err)
			}
			dataset = EmptyDataset()
		} else {
			slog.Debug("Sheet loaded", "records", dataset.Len())
		}

		l.store(dataset, generation)
		return dataset, nil
	})

	return result.(*Dataset)
}

// Fetch performs one uncached read of the source.
func (l *Loader) Fetch(ctx context.Context) (*Dataset, error) {
	if !strings.Contains(l.source, "http") {
		return nil, ErrUnconfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	dataset, err := l.parser.Run(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}

	return dataset, nil
}

// Invalidate drops the cached Dataset so the next Load fetches again. A fetch
// already in flight still answers its own callers but is not cached.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entry = nil
	l.generation++
	l.flight.Forget(flightKey)
}

func (l *Loader) FetchedAt() (time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.entry == nil {
		return time.Time{}, false
	}
	return l.entry.fetchedAt, true
}

// Peek returns the cache entry, expired or not, without ever fetching.
func (l *Loader) Peek() (*Dataset, time.Time, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.entry == nil {
		return nil, time.Time{}, false
	}
	return l.entry.dataset, l.entry.fetchedAt, true
}

func (l *Loader) cached() (*Dataset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.entry == nil || l.now().Sub(l.entry.fetchedAt) >= l.ttl {
		return nil, false
	}
	return l.entry.dataset, true
}

func (l *Loader) currentGeneration() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.generation
}

// store keeps the result only if no Invalidate happened since the fetch began.
func (l *Loader) store(dataset *Dataset, generation uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.generation {
		slog.Debug("Discarding sheet fetched before invalidation")
		return
	}
	l.entry = &cacheEntry{dataset: dataset, fetchedAt: l.now()}
}
