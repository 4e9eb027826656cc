// Package aggregator merges locally posted jobs with freshly fetched
// external listings into one candidate list for display.
package aggregator

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/providers"
)

// defaultQuery keeps the provider query from being overly generic when
// neither a search term nor a category filter is given.
const defaultQuery = "jobs"

// LocalSource yields the locally posted jobs (combined remote/cache
// read). Failures are absorbed inside the source; List never errors.
type LocalSource interface {
	List(ctx context.Context) []models.Job
}

type Aggregator struct {
	local      LocalSource
	searchers  []providers.Searcher
	pageBudget int
	log        logger.Logger
	rng        *rand.Rand
	mu         sync.Mutex // guards rng
}

func New(local LocalSource, searchers []providers.Searcher, pageBudget int, log logger.Logger) *Aggregator {
	return &Aggregator{
		local:      local,
		searchers:  searchers,
		pageBudget: pageBudget,
		log:        log.WithFields(map[string]interface{}{"component": "aggregator"}),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// JobsForDisplay returns locally-originated jobs first (most recent
// first) followed by external listings (shuffled), filtered by category.
// All sources are queried concurrently and resolved independently: a
// failed source contributes an empty slice, never an error.
func (a *Aggregator) JobsForDisplay(ctx context.Context, searchTerm, category string) []models.Job {
	start := time.Now()
	metrics.AggregationRequests.Inc()
	defer func() {
		metrics.AggregationDuration.Observe(time.Since(start).Seconds())
	}()

	query := a.buildQuery(searchTerm, category)

	var wg sync.WaitGroup

	var localJobs []models.Job
	wg.Add(1)
	go func() {
		defer wg.Done()
		localJobs = a.local.List(ctx)
	}()

	externalResults := make([][]models.Job, len(a.searchers))
	for i, s := range a.searchers {
		wg.Add(1)
		go func(i int, s providers.Searcher) {
			defer wg.Done()
			jobs, err := s.Search(ctx, query, "", a.pageBudget)
			if err != nil {
				a.log.Warn("provider search failed, degrading to remaining sources", map[string]interface{}{
					"provider": s.Name(),
					"error":    err.Error(),
				})
				return
			}
			externalResults[i] = jobs
		}(i, s)
	}

	wg.Wait()

	sort.SliceStable(localJobs, func(i, j int) bool {
		return localJobs[i].CreatedAt > localJobs[j].CreatedAt
	})

	var external []models.Job
	for _, jobs := range externalResults {
		external = append(external, jobs...)
	}
	a.shuffle(external)

	merged := make([]models.Job, 0, len(localJobs)+len(external))
	merged = append(merged, localJobs...)
	merged = append(merged, external...)

	return filterByCategory(merged, category)
}

// buildQuery concatenates the search term and category filter into one
// provider query string.
func (a *Aggregator) buildQuery(searchTerm, category string) string {
	parts := make([]string, 0, 2)
	if t := strings.TrimSpace(searchTerm); t != "" {
		parts = append(parts, t)
	}
	if c := strings.TrimSpace(category); c != "" && c != models.CategoryAll {
		parts = append(parts, c)
	}
	if len(parts) == 0 {
		return defaultQuery
	}
	return strings.Join(parts, " ")
}

// shuffle randomizes external listing order for visual variety.
func (a *Aggregator) shuffle(jobs []models.Job) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rng.Shuffle(len(jobs), func(i, j int) {
		jobs[i], jobs[j] = jobs[j], jobs[i]
	})
}

// filterByCategory keeps exact category matches; "All" or empty
// bypasses the filter.
func filterByCategory(jobs []models.Job, category string) []models.Job {
	if category == "" || category == models.CategoryAll {
		return jobs
	}
	kept := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Category == category {
			kept = append(kept, j)
		}
	}
	return kept
}
