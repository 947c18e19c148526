// Package agmarknet is the upstream adapter for the data.gov.in daily mandi
// price resource (Agmarknet commodity prices).
package agmarknet

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"CropAdvisor/internal/domain/models"
	drepo "CropAdvisor/internal/domain/repository"
	xhttp "CropAdvisor/pkg/http"
	applogger "CropAdvisor/pkg/logger"
	"CropAdvisor/pkg/util"
)

const stateFilterParam = "filters[state.keyword]"

// Config holds upstream settings.
type Config struct {
	BaseURL          string
	APIKey           string
	PageSize         int
	MaxRecords       int
	StateSearchLimit int
	Timeout          time.Duration
}

// Client implements a PriceSource backed by the data.gov.in REST API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	rnd     util.Random
	now     func() time.Time
	log     *applogger.Logger
	metrics drepo.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithRandom sets the noise source used for synthesized previous prices.
func WithRandom(r util.Random) Option { return func(c *Client) { c.rnd = r } }

// WithClock overrides the clock used for fallback timestamps.
func WithClock(now func() time.Time) Option { return func(c *Client) { c.now = now } }

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *xhttp.Client) Option { return func(c *Client) { c.http = h } }

// New creates the upstream client. The API key is required.
func New(cfg Config, l *applogger.Logger, m drepo.Metrics, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("agmarknet: api key is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("agmarknet: base url is required")
	}
	if cfg.PageSize <= 0 || cfg.MaxRecords <= 0 || cfg.StateSearchLimit <= 0 {
		return nil, fmt.Errorf("agmarknet: page size, max records and state search limit must be positive")
	}
	if l == nil {
		l = applogger.Nop()
	}
	c := &Client{
		cfg:     cfg,
		http:    xhttp.NewClient(xhttp.WithTimeout(cfg.Timeout)),
		rnd:     util.NewRandom(),
		now:     time.Now,
		log:     l.Component("agmarknet"),
		metrics: m,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll pages through the resource and returns normalized records.
// Any failed page fails the whole fetch.
func (c *Client) FetchAll(ctx context.Context) ([]models.PriceRecord, error) {
	start := c.now()
	pager := NewPager(c.fetchPage, c.cfg.PageSize, c.cfg.MaxRecords)

	var rows []RawRow
	for pager.Next(ctx) {
		rows = append(rows, pager.Page()...)
	}
	if err := pager.Err(); err != nil {
		c.observe("fetch_all", start, err)
		return nil, fmt.Errorf("fetch page %d: %w", pager.Requests(), err)
	}
	c.observe("fetch_all", start, nil)

	records, dropped := Normalize(rows, c.rnd, c.now())
	c.recordDropped(dropped)
	c.log.Info("fetched mandi records",
		applogger.Int("rows", len(rows)),
		applogger.Int("records", len(records)),
		applogger.Int("dropped", dropped),
		applogger.Int("requests", pager.Requests()),
	)
	return records, nil
}

// FetchByState issues one server-side filtered query for the state.
func (c *Client) FetchByState(ctx context.Context, state string) ([]models.PriceRecord, error) {
	start := c.now()
	var resp recordsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL,
		QueryParams: map[string][]string{
			"api-key":        {c.cfg.APIKey},
			"format":         {"json"},
			"limit":          {strconv.Itoa(c.cfg.StateSearchLimit)},
			stateFilterParam: {state},
		},
	}, &resp)
	err = redactKey(err)
	c.observe("fetch_state", start, err)
	if err != nil {
		return nil, fmt.Errorf("state query %q: %w", state, err)
	}

	records, dropped := Normalize(resp.Records, c.rnd, c.now())
	c.recordDropped(dropped)
	c.log.Debug("fetched state records",
		applogger.String("state", state),
		applogger.Int("records", len(records)),
		applogger.Int("upstream_total", resp.total()),
	)
	return records, nil
}

func (c *Client) fetchPage(ctx context.Context, limit, offset int) ([]RawRow, error) {
	var resp recordsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.BaseURL,
		QueryParams: map[string][]string{
			"api-key": {c.cfg.APIKey},
			"format":  {"json"},
			"limit":   {strconv.Itoa(limit)},
			"offset":  {strconv.Itoa(offset)},
		},
	}, &resp)
	if err != nil {
		return nil, redactKey(err)
	}
	return resp.Records, nil
}

// redactKey strips the query string from transport errors so the API key
// never reaches logs.
func redactKey(err error) error {
	var ue *url.Error
	if err == nil || !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		return fmt.Errorf("%s request: %w", ue.Op, ue.Err)
	}
	u.RawQuery = ""
	return fmt.Errorf("%s %s: %w", ue.Op, u.String(), ue.Err)
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.metrics.RecordUpstreamRequest(op, result, c.now().Sub(start).Seconds())
}

func (c *Client) recordDropped(n int) {
	if c.metrics != nil && n > 0 {
		c.metrics.RecordRowsDropped(n)
	}
}

var _ drepo.PriceSource = (*Client)(nil)
