// Package adzuna implements the secondary regional listing fetcher,
// backed by the Adzuna jobs API.
package adzuna

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/23BCE0066/Hirely/internal/common/config"
	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/httpclient"
	"github.com/23BCE0066/Hirely/internal/common/logger"
	"github.com/23BCE0066/Hirely/internal/common/metrics"
	"github.com/23BCE0066/Hirely/internal/models"
	"github.com/23BCE0066/Hirely/internal/providers/normalize"
)

const SourceName = "adzuna"

// categoryLabels maps the provider's category labels onto the local
// vocabulary; unrecognized labels fall back to the title heuristic.
var categoryLabels = map[string]string{
	"IT Jobs":                          "Engineering",
	"Engineering Jobs":                 "Engineering",
	"Creative & Design Jobs":           "Design",
	"PR, Advertising & Marketing Jobs": "Marketing",
	"Sales Jobs":                       "Sales",
}

type Client struct {
	baseURL        string
	appID          string
	appKey         string
	country        string
	resultsPerPage int
	http           *httpclient.Client
	log            logger.Logger
	printer        *message.Printer
}

func New(cfg config.AdzunaConfig, log logger.Logger) *Client {
	return &Client{
		baseURL:        cfg.BaseURL,
		appID:          cfg.AppID,
		appKey:         cfg.AppKey,
		country:        cfg.Country,
		resultsPerPage: cfg.ResultsPerPage,
		http:           httpclient.New(config.GetDuration(cfg.Timeout)),
		log:            log.WithFields(map[string]interface{}{"provider": SourceName}),
		printer:        message.NewPrinter(language.English),
	}
}

func (c *Client) Name() string { return SourceName }

type searchResponse struct {
	Count   int      `json:"count"`
	Results []result `json:"results"`
}

type result struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SalaryMin   float64 `json:"salary_min"`
	SalaryMax   float64 `json:"salary_max"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Label string `json:"label"`
	} `json:"category"`
	ContractTime string `json:"contract_time"`
	ContractType string `json:"contract_type"`
	RedirectURL  string `json:"redirect_url"`
	Created      string `json:"created"`
}

// Search issues a single-page request. The pageBudget argument is part
// of the Searcher contract but this provider never paginates.
func (c *Client) Search(ctx context.Context, query, location string, pageBudget int) ([]models.Job, error) {
	if c.appID == "" || c.appKey == "" {
		return nil, apperrors.NewProviderError(SourceName, fmt.Errorf("missing app credentials"))
	}

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.searchURL(query, location), &resp); err != nil {
		metrics.ProviderFetches.WithLabelValues(SourceName, "error").Inc()
		if statusErr, ok := err.(*httpclient.StatusError); ok {
			return nil, apperrors.NewProviderStatusError(SourceName, statusErr.StatusCode)
		}
		return nil, apperrors.NewProviderError(SourceName, err)
	}

	jobs := make([]models.Job, 0, len(resp.Results))
	for _, r := range resp.Results {
		jobs = append(jobs, c.mapJob(r))
	}

	metrics.ProviderFetches.WithLabelValues(SourceName, "ok").Inc()
	metrics.ProviderJobsFetched.WithLabelValues(SourceName).Add(float64(len(jobs)))
	return jobs, nil
}

func (c *Client) searchURL(query, location string) string {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("what", query)
	if location != "" {
		params.Set("where", location)
	}
	params.Set("results_per_page", fmt.Sprintf("%d", c.resultsPerPage))
	params.Set("content-type", "application/json")
	return fmt.Sprintf("%s/%s/search/1?%s", c.baseURL, c.country, params.Encode())
}

func (c *Client) mapJob(r result) models.Job {
	category, ok := categoryLabels[r.Category.Label]
	if !ok {
		category = normalize.ClassifyCategory(r.Title)
	}

	return models.Job{
		ID:             normalize.SyntheticID(SourceName, r.ID),
		Title:          r.Title,
		Company:        r.Company.DisplayName,
		Location:       r.Location.DisplayName,
		Type:           c.employmentType(r),
		Salary:         c.formatSalary(r.SalaryMin, r.SalaryMax),
		Category:       category,
		PostedAt:       c.formatCreated(r.Created),
		Description:    r.Description,
		Logo:           normalize.AvatarURL(r.Company.DisplayName),
		IsExternal:     true,
		ExternalURL:    r.RedirectURL,
		ExternalSource: SourceName,
	}
}

func (c *Client) employmentType(r result) models.EmploymentType {
	switch strings.ToLower(r.ContractTime) {
	case "full_time":
		return models.TypeFullTime
	case "part_time":
		return models.TypePartTime
	}
	if strings.ToLower(r.ContractType) == "contract" {
		return models.TypeContract
	}
	return normalize.DetectEmploymentType("", r.Title, r.Description)
}

// formatSalary renders the provider's numeric min/max into a
// locale-formatted currency range with thousands separators.
func (c *Client) formatSalary(min, max float64) string {
	switch {
	case min > 0 && max > 0:
		return c.printer.Sprintf("₹%d - ₹%d", int64(min), int64(max))
	case min > 0:
		return c.printer.Sprintf("From ₹%d", int64(min))
	case max > 0:
		return c.printer.Sprintf("Up to ₹%d", int64(max))
	}
	return normalize.SalaryNotSpecified
}

func (c *Client) formatCreated(created string) string {
	if t, err := time.Parse(time.RFC3339, created); err == nil {
		return t.Format("2006-01-02")
	}
	if created != "" {
		return created
	}
	return "Recently"
}
