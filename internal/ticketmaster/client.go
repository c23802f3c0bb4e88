package ticketmaster

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/config"
)

const defaultPageSize = 50

// SearchParams are the filters for one page of the event search endpoint
type SearchParams struct {
	Keyword   string
	City      string
	StateCode string
	Page      int
}

// Client queries the Ticketmaster Discovery API
type Client struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *http.Client
	logger   *zap.Logger
}

// NewClient creates a Discovery API client from configuration
func NewClient(cfg *config.TicketmasterConfig, logger *zap.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		apiKey:   cfg.APIKey,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: pageSize,
		client:   &http.Client{Timeout: 15 * time.Second, Transport: tr},
		logger:   logger,
	}
}

// FetchEvents retrieves one page of events matching the given filters, sorted
// by date ascending. A non-2xx response is an error; the sync treats that as
// fatal for the whole run.
func (c *Client) FetchEvents(ctx context.Context, params SearchParams) ([]Event, error) {
	query := url.Values{}
	query.Set("apikey", c.apiKey)
	query.Set("classificationName", "music")
	query.Set("size", strconv.Itoa(c.pageSize))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("sort", "date,asc")

	if params.Keyword != "" {
		query.Set("keyword", params.Keyword)
	}
	if params.City != "" {
		query.Set("city", params.City)
	}
	if params.StateCode != "" {
		query.Set("stateCode", params.StateCode)
	}

	endpoint := c.baseURL + "/events.json?" + query.Encode()

	c.logger.Info("Fetching events from Ticketmaster",
		zap.String("url", strings.ReplaceAll(endpoint, c.apiKey, "***")),
		zap.Int("page", params.Page),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticketmaster request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ticketmaster api error: status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ticketmaster response: %w", err)
	}

	if payload.Embedded == nil {
		return nil, nil
	}
	return payload.Embedded.Events, nil
}
