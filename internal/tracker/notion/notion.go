// Package notion implements tracker.Source against the Notion API.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/alanmeadows/prgate/internal/tracker"
)

// Client looks up task records in a single Notion database. The ID and
// status property names are supplied at construction — Notion schemas vary
// per workspace, so nothing about the database layout is hardcoded.
type Client struct {
	api            *notionapi.Client
	databaseID     notionapi.DatabaseID
	idProperty     string
	statusProperty string
}

// Option customizes the underlying Notion API client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the HTTP client used for Notion API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// NewClient creates a Notion-backed task status source.
func NewClient(token, databaseID, idProperty, statusProperty string, opts ...Option) *Client {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var apiOpts []notionapi.ClientOption
	if o.httpClient != nil {
		apiOpts = append(apiOpts, notionapi.WithHTTPClient(o.httpClient))
	}

	return &Client{
		api:            notionapi.NewClient(notionapi.Token(token), apiOpts...),
		databaseID:     notionapi.DatabaseID(databaseID),
		idProperty:     idProperty,
		statusProperty: statusProperty,
	}
}

// Lookup queries the database for the page whose ID property equals taskID.
// Returns tracker.ErrNotFound when no page matches. A matching page with a
// missing or unset status property still yields its canonical URL; the
// status is simply empty.
func (c *Client) Lookup(ctx context.Context, taskID int) (*tracker.TaskStatus, error) {
	id := float64(taskID)
	resp, err := c.api.Database.Query(ctx, c.databaseID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: c.idProperty,
			Number:   &notionapi.NumberFilterCondition{Equals: &id},
		},
		PageSize: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("querying database for task %d: %w", taskID, err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("task %d: %w", taskID, tracker.ErrNotFound)
	}

	page := resp.Results[0]
	return &tracker.TaskStatus{
		Status: c.statusOf(page),
		URL:    page.URL,
	}, nil
}

// statusOf extracts the status label from the configured property. Both the
// legacy select type and the dedicated status type are accepted; anything
// else reads as no status.
func (c *Client) statusOf(page notionapi.Page) string {
	prop, ok := page.Properties[c.statusProperty]
	if !ok {
		return ""
	}
	switch p := prop.(type) {
	case *notionapi.StatusProperty:
		return strings.ToLower(p.Status.Name)
	case *notionapi.SelectProperty:
		return strings.ToLower(p.Select.Name)
	default:
		return ""
	}
}

var _ tracker.Source = (*Client)(nil)
