// Package source provides the country dataset clients used by the dataset
// store: the restcountries HTTP API and a local JSON/YAML file.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/sirupsen/logrus"
)

// HTTPClient fetches the country list from a restcountries-compatible endpoint.
// It performs exactly one request per call and never retries.
type HTTPClient struct {
	httpClient *http.Client
	timeout    *time.Duration
	endpoint   string
	fields     []string
	logger     *logrus.Entry
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient sets the *http.Client requests are sent with. A nil client
// keeps the default.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

// WithTimeout sets the request timeout. Zero disables it. The given
// *http.Client is copied, never modified.
func WithTimeout(d time.Duration) HTTPOption {
	return func(h *HTTPClient) {
		h.timeout = &d
	}
}

// WithFields limits the response to the given fields.
func WithFields(fields ...string) HTTPOption {
	return func(h *HTTPClient) {
		h.fields = fields
	}
}

// WithHTTPLogger sets the logger used for request logging.
func WithHTTPLogger(logger *logrus.Entry) HTTPOption {
	return func(h *HTTPClient) {
		h.logger = logger
	}
}

// NewHTTPClient creates a client for endpoint.
func NewHTTPClient(endpoint string, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		logger:     logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout != nil {
		client := *c.httpClient
		client.Timeout = *c.timeout
		c.httpClient = &client
	}
	return c
}

// RequestURL returns the URL requested by FetchAllCountries.
func (c *HTTPClient) RequestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	if len(c.fields) > 0 {
		escaped := make([]string, len(c.fields))
		for i, f := range c.fields {
			escaped[i] = url.QueryEscape(f)
		}
		q := "fields=" + strings.Join(escaped, ",")
		if u.RawQuery != "" {
			q = u.RawQuery + "&" + q
		}
		u.RawQuery = q
	}
	return u.String(), nil
}

// FetchAllCountries performs a single GET and decodes the JSON array.
func (c *HTTPClient) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	requestURL, err := c.RequestURL()
	if err != nil {
		return nil, errors.FetchFailed(c.endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, errors.FetchFailed(c.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.FetchFailed(c.endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.WithFields(logrus.Fields{
		"url":      requestURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Country source responded")

	if resp.StatusCode != http.StatusOK {
		return nil, errors.SourceUnavailable(c.endpoint, resp.StatusCode)
	}

	var list []models.Country
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeFetchFailed,
			fmt.Sprintf("malformed response from %s: %v", c.endpoint, err)).
			WithDetail("source", c.endpoint)
	}
	return list, nil
}
