// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
)

// Config holds the connection settings of one store.
type Config struct {
	// Addresses lists the store node URLs. Ignored when CloudID is set.
	Addresses []string

	// CloudID addresses an Elastic Cloud deployment.
	CloudID string

	// Username and Password enable basic authentication.
	Username string
	Password string

	// APIKey is a base64 encoded API key. Takes precedence over basic auth.
	APIKey string

	// CACert is a PEM bundle trusted in addition to the system roots.
	CACert []byte

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool

	// Timeout bounds each request. Zero uses defaults.StoreRequestTimeout.
	Timeout time.Duration

	// MaxRetries is the transport retry count for 502/503/504 responses.
	// Zero uses defaults.StoreMaxRetries.
	MaxRetries int

	// DisableRetry turns transport retries off.
	DisableRetry bool
}

// Client is an Elasticsearch-backed Searcher and BulkWriter.
type Client struct {
	es      *elasticsearch.Client
	name    string
	timeout time.Duration
}

var (
	_ Searcher   = (*Client)(nil)
	_ BulkWriter = (*Client)(nil)
)

// NewClient creates a store client. Name labels its metrics and logs
// (e.g. "input", "output").
func NewClient(name string, cfg Config) (*Client, error) {
	if len(cfg.Addresses) == 0 && cfg.CloudID == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "store addresses or cloud id required")
	}

	transport, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaults.StoreMaxRetries
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addresses,
		CloudID:      cfg.CloudID,
		Username:     cfg.Username,
		Password:     cfg.Password,
		APIKey:       cfg.APIKey,
		Transport:    transport,
		MaxRetries:   maxRetries,
		DisableRetry: cfg.DisableRetry,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to create store client", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaults.StoreRequestTimeout
	}

	return &Client{es: es, name: name, timeout: timeout}, nil
}

// Search runs req and decodes the hits.
func (c *Client) Search(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "search request is nil")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode search request", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(req.Index...),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		c.observe("search", start, 0)
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "search request failed", err,
			map[string]any{"store": c.name, "indices": req.Index})
	}
	defer res.Body.Close()
	c.observe("search", start, res.StatusCode)

	if res.IsError() {
		return nil, statusError("search", c.name, res)
	}

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to decode search response", err)
	}

	slog.Debug("search complete",
		slog.String("store", c.name),
		slog.Int("hits", len(out.Hits.Hits)),
		slog.Int("took_ms", out.Took))

	return &out, nil
}

// Bulk submits body as a single NDJSON bulk request.
func (c *Client) Bulk(ctx context.Context, body []any) (*BulkResponse, error) {
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "bulk body is empty")
	}

	payload, err := EncodeBulkBody(body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to encode bulk body", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	res, err := c.es.Bulk(bytes.NewReader(payload), c.es.Bulk.WithContext(ctx))
	if err != nil {
		c.observe("bulk", start, 0)
		return nil, errors.WrapWithContext(errors.ErrCodeUnavailable, "bulk request failed", err,
			map[string]any{"store": c.name, "lines": len(body)})
	}
	defer res.Body.Close()
	c.observe("bulk", start, res.StatusCode)

	if res.IsError() {
		return nil, statusError("bulk", c.name, res)
	}

	var out BulkResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to decode bulk response", err)
	}
	return &out, nil
}

func (c *Client) observe(op string, start time.Time, status int) {
	storeRequestDuration.WithLabelValues(c.name, op).Observe(time.Since(start).Seconds())
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	storeRequestsTotal.WithLabelValues(c.name, op, code).Inc()
}

// storeErrorBody is the error envelope returned with non-2xx responses.
type storeErrorBody struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

func statusError(op, store string, res *esapi.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	msg := fmt.Sprintf("%s returned %s", op, http.StatusText(res.StatusCode))
	var eb storeErrorBody
	if err := json.Unmarshal(raw, &eb); err == nil && eb.Error.Type != "" {
		msg = fmt.Sprintf("%s returned %d: %s: %s", op, res.StatusCode, eb.Error.Type, eb.Error.Reason)
	}

	return errors.NewWithContext(codeForStatus(res.StatusCode), msg, map[string]any{
		"store":  store,
		"status": res.StatusCode,
	})
}

func codeForStatus(status int) errors.ErrorCode {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return errors.ErrCodeUnauthorized
	case status == http.StatusNotFound:
		return errors.ErrCodeNotFound
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return errors.ErrCodeTimeout
	case status == http.StatusBadRequest:
		return errors.ErrCodeInvalidRequest
	case status == http.StatusTooManyRequests, status >= 500:
		return errors.ErrCodeUnavailable
	default:
		return errors.ErrCodeInternal
	}
}
