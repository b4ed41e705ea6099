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
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/asset-discovery/pkg/errors"
)

// fakeStore is a minimal store speaking the search and bulk endpoints.
type fakeStore struct {
	mu          sync.Mutex
	searchPaths []string
	searchBody  map[string]any
	bulkLines   []string
	status      int
	response    string
}

func (f *fakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		f.searchPaths = append(f.searchPaths, r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&f.searchBody)
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		sc := bufio.NewScanner(r.Body)
		for sc.Scan() {
			f.bulkLines = append(f.bulkLines, sc.Text())
		}
	default:
		_, _ = io.Copy(io.Discard, r.Body)
	}

	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.response)
}

func newTestClient(t *testing.T, store *fakeStore) *Client {
	t.Helper()
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	c, err := NewClient("test", Config{Addresses: []string{srv.URL}, DisableRetry: true})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresAddress(t *testing.T) {
	_, err := NewClient("test", Config{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestNewClient_RejectsBadCA(t *testing.T) {
	_, err := NewClient("test", Config{Addresses: []string{"http://localhost:9200"}, CACert: []byte("not a pem")})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestClient_Search(t *testing.T) {
	store := &fakeStore{response: `{
		"took": 2,
		"timed_out": false,
		"hits": {"hits": [
			{"_index": "traces-1", "_id": "x", "_score": 2.0,
			 "fields": {"container.id": ["c1"], "kubernetes.pod.uid": ["p1"]}}
		]}
	}`}
	c := newTestClient(t, store)

	res, err := c.Search(context.Background(), &Request{
		Index:    []string{"traces-*", "metrics-*"},
		Size:     1000,
		Collapse: &Collapse{Field: "container.id"},
	})
	require.NoError(t, err)

	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "c1", res.Hits.Hits[0].Field("container.id"))
	assert.Equal(t, "p1", res.Hits.Hits[0].Field("kubernetes.pod.uid"))

	require.Len(t, store.searchPaths, 1)
	assert.Contains(t, store.searchPaths[0], "traces-*,metrics-*")
	assert.EqualValues(t, 1000, store.searchBody["size"])
	assert.Equal(t, map[string]any{"field": "container.id"}, store.searchBody["collapse"])
}

func TestClient_SearchStatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   errors.ErrorCode
	}{
		{"unauthorized", http.StatusUnauthorized, errors.ErrCodeUnauthorized},
		{"missing index", http.StatusNotFound, errors.ErrCodeNotFound},
		{"bad query", http.StatusBadRequest, errors.ErrCodeInvalidRequest},
		{"server error", http.StatusInternalServerError, errors.ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				status:   tt.status,
				response: `{"error": {"type": "some_exception", "reason": "because"}, "status": 1}`,
			}
			c := newTestClient(t, store)

			_, err := c.Search(context.Background(), &Request{Index: []string{"logs-*"}})
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.CodeOf(err))
			assert.Contains(t, err.Error(), "some_exception")
		})
	}
}

func TestClient_SearchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := NewClient("test", Config{Addresses: []string{addr}, DisableRetry: true})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), &Request{Index: []string{"logs-*"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnavailable, errors.CodeOf(err))
}

func TestClient_Bulk(t *testing.T) {
	store := &fakeStore{response: `{
		"took": 5,
		"errors": true,
		"items": [
			{"create": {"_index": "assets-container-default", "_id": "1", "status": 201}},
			{"create": {"_index": "assets-container-default", "status": 400,
				"error": {"type": "version_conflict_engine_exception", "reason": "exists"}}}
		]
	}`}
	c := newTestClient(t, store)

	body := []any{
		CreateAction("assets-container-default"), map[string]string{"asset.id": "c1"},
		CreateAction("assets-container-default"), map[string]string{"asset.id": "c2"},
	}
	res, err := c.Bulk(context.Background(), body)
	require.NoError(t, err)

	assert.True(t, res.Errors)
	require.Len(t, res.Failed(), 1)
	assert.Equal(t, "version_conflict_engine_exception", res.Failed()[0].Error.Type)

	require.Len(t, store.bulkLines, 4)
	assert.JSONEq(t, `{"create":{"_index":"assets-container-default"}}`, store.bulkLines[0])
	assert.JSONEq(t, `{"asset.id":"c2"}`, store.bulkLines[3])
}

func TestClient_BulkEmptyBody(t *testing.T) {
	c := newTestClient(t, &fakeStore{})

	_, err := c.Bulk(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}
