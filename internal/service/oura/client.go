package oura

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kola-ootro/oura-ring-data-collector/internal/domain/models"
	drepo "github.com/kola-ootro/oura-ring-data-collector/internal/domain/repository"
	xhttp "github.com/kola-ootro/oura-ring-data-collector/pkg/http"
	"github.com/kola-ootro/oura-ring-data-collector/pkg/util"
)

// Client fetches usercollection documents from the Oura v2 REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a metric Source backed by the Oura API. No retries: a failed
// fetch for one metric type is reported to the caller and nothing else.
func New(apiKey, baseURL string, timeout time.Duration) drepo.Source {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// Fetch issues an authenticated GET for one metric type over an inclusive
// calendar-date range and returns the parsed bucket.
func (c *Client) Fetch(ctx context.Context, mt models.MetricType, start, end time.Time) (*models.Bucket, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/%s", c.baseURL, mt),
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
		},
		QueryParams: map[string]string{
			"start_date": util.FormatDate(start),
			"end_date":   util.FormatDate(end),
		},
	})
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	var bucket models.Bucket
	if err := json.NewDecoder(resp.Body).Decode(&bucket); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", mt, err)
	}

	return &bucket, nil
}
