// Package serpapi implements the primary external listing fetcher,
// backed by the SerpApi Google Jobs engine.
package serpapi

import (
	"context"
	"fmt"
	"net/url"

	"github.com/23BCE0066/Hirely/internal/common/config"
	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/httpclient"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/providers/normalize"
)

const (
	SourceName = "serpapi"

	// maxPages caps pagination regardless of the requested budget.
	maxPages = 3
)

type Client struct {
	baseURL string
	apiKey  string
	http    *httpclient.Client
	log     logger.Logger
}

func New(cfg config.SerpAPIConfig, log logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    httpclient.New(config.GetDuration(cfg.Timeout)),
		log:     log.WithFields(map[string]interface{}{"provider": SourceName}),
	}
}

func (c *Client) Name() string { return SourceName }

type searchResponse struct {
	JobsResults []jobResult `json:"jobs_results"`
	Pagination  struct {
		NextPageToken string `json:"next_page_token"`
	} `json:"serpapi_pagination"`
}

type jobResult struct {
	Title        string `json:"title"`
	CompanyName  string `json:"company_name"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ShareLink    string `json:"share_link"`
	ApplyOptions []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"apply_options"`
	DetectedExtensions struct {
		PostedAt     string `json:"posted_at"`
		ScheduleType string `json:"schedule_type"`
		Salary       string `json:"salary"`
	} `json:"detected_extensions"`
}

// Search issues up to pageBudget (capped at 3) sequential paginated
// requests, following the server-supplied continuation token. A
// non-success response on any page stops pagination early; partial
// results already collected are kept.
func (c *Client) Search(ctx context.Context, query, location string, pageBudget int) ([]models.Job, error) {
	if c.apiKey == "" {
		return nil, apperrors.NewProviderError(SourceName, fmt.Errorf("missing api key"))
	}
	if pageBudget <= 0 || pageBudget > maxPages {
		pageBudget = maxPages
	}

	var jobs []models.Job
	nextToken := ""

	for page := 0; page < pageBudget; page++ {
		var resp searchResponse
		if err := c.http.GetJSON(ctx, c.searchURL(query, location, nextToken), &resp); err != nil {
			metrics.ProviderFetches.WithLabelValues(SourceName, "error").Inc()
			if len(jobs) > 0 {
				c.log.Warn("pagination stopped early, keeping partial results", map[string]interface{}{
					"page":      page,
					"collected": len(jobs),
					"error":     err.Error(),
				})
				break
			}
			if statusErr, ok := err.(*httpclient.StatusError); ok {
				return nil, apperrors.NewProviderStatusError(SourceName, statusErr.StatusCode)
			}
			return nil, apperrors.NewProviderError(SourceName, err)
		}

		for _, r := range resp.JobsResults {
			jobs = append(jobs, c.mapJob(r))
		}

		nextToken = resp.Pagination.NextPageToken
		if nextToken == "" {
			break
		}
	}

	metrics.ProviderFetches.WithLabelValues(SourceName, "ok").Inc()
	metrics.ProviderJobsFetched.WithLabelValues(SourceName).Add(float64(len(jobs)))
	return jobs, nil
}

func (c *Client) searchURL(query, location, pageToken string) string {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", query)
	if location != "" {
		params.Set("location", location)
	}
	if pageToken != "" {
		params.Set("next_page_token", pageToken)
	}
	params.Set("api_key", c.apiKey)
	return c.baseURL + "?" + params.Encode()
}

func (c *Client) mapJob(r jobResult) models.Job {
	logo := r.Thumbnail
	if logo == "" {
		logo = normalize.AvatarURL(r.CompanyName)
	}

	externalURL := r.ShareLink
	if len(r.ApplyOptions) > 0 && r.ApplyOptions[0].Link != "" {
		externalURL = r.ApplyOptions[0].Link
	}

	postedAt := r.DetectedExtensions.PostedAt
	if postedAt == "" {
		postedAt = "Recently"
	}

	return models.Job{
		ID:             normalize.SyntheticID("serp", ""),
		Title:          r.Title,
		Company:        r.CompanyName,
		Location:       r.Location,
		Type:           normalize.DetectEmploymentType(r.DetectedExtensions.ScheduleType, r.Title, r.Description),
		Salary:         normalize.ExtractSalary(r.DetectedExtensions.Salary, r.Description),
		Category:       normalize.ClassifyCategory(r.Title),
		PostedAt:       postedAt,
		Description:    r.Description,
		Logo:           logo,
		IsExternal:     true,
		ExternalURL:    externalURL,
		ExternalSource: SourceName,
	}
}
