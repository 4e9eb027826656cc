// Package providers defines the contract implemented by the external
// listing fetchers.
package providers

import (
	"context"

	"github.com/23BCE0066/Hirely/internal/models"
)

// Searcher fetches listings from one third-party job-search API and maps
// them into the canonical Job shape. Implementations return at most
// pageBudget pages worth of results; a transport failure, non-success
// status or missing credentials yields an empty list and a PROVIDER_ERROR
// that callers absorb rather than surfacing.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query, location string, pageBudget int) ([]models.Job, error)
}
