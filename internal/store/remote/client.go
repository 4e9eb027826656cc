// Package remote implements the thin HTTP client wrapping CRUD calls to
// the hosted store API. Every call is bounded by a fixed timeout; on
// timeout or non-success response the call fails with REMOTE_UNAVAILABLE
// rather than propagating the transport error. No retries are performed
// here — the caller decides whether to fall back to the local cache.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/23BCE0066/Hirely/internal/common/errors"
	"github.com/23BCE0066/Hirely/internal/common/httpclient"
	"github.com/23BCE0066/Hirely/internal/common/logger"
)

const DefaultTimeout = 8 * time.Second

type Client struct {
	baseURL string
	http    *httpclient.Client
	log     logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    httpclient.New(timeout),
		log:     log.WithFields(map[string]interface{}{"component": "remote-store"}),
	}
}

func (c *Client) url(entity, id string) string {
	if id == "" {
		return fmt.Sprintf("%s/api/db/%s", c.baseURL, entity)
	}
	return fmt.Sprintf("%s/api/db/%s/%s", c.baseURL, entity, id)
}

// List fetches every record of an entity type into out.
func (c *Client) List(ctx context.Context, entity string, out any) error {
	return c.call(ctx, http.MethodGet, c.url(entity, ""), nil, out, "list "+entity)
}

// GetByID fetches a single record into out.
func (c *Client) GetByID(ctx context.Context, entity, id string, out any) error {
	return c.call(ctx, http.MethodGet, c.url(entity, id), nil, out, "get "+entity)
}

// Create persists a new record; the stored representation is decoded
// into out when out is non-nil.
func (c *Client) Create(ctx context.Context, entity string, body, out any) error {
	return c.call(ctx, http.MethodPost, c.url(entity, ""), body, out, "create "+entity)
}

// Update applies a partial update to an existing record.
func (c *Client) Update(ctx context.Context, entity, id string, patch, out any) error {
	return c.call(ctx, http.MethodPatch, c.url(entity, id), patch, out, "update "+entity)
}

// Upsert replaces or creates a record under a caller-chosen id.
func (c *Client) Upsert(ctx context.Context, entity, id string, body, out any) error {
	return c.call(ctx, http.MethodPut, c.url(entity, id), body, out, "upsert "+entity)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, entity, id string) error {
	return c.call(ctx, http.MethodDelete, c.url(entity, id), nil, nil, "delete "+entity)
}

func (c *Client) call(ctx context.Context, method, url string, body, out any, op string) error {
	err := c.http.DoJSON(ctx, method, url, body, out)
	if err == nil {
		return nil
	}
	if statusErr, ok := err.(*httpclient.StatusError); ok {
		return apperrors.NewRemoteStatusError(op, statusErr.StatusCode)
	}
	return apperrors.NewRemoteUnavailable(op, err)
}
