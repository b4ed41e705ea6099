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


package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/collector"
	"github.com/NVIDIA/asset-discovery/pkg/config"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/header"
	"github.com/NVIDIA/asset-discovery/pkg/runner"
	"github.com/NVIDIA/asset-discovery/pkg/search"
	"github.com/NVIDIA/asset-discovery/pkg/serializer"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantFormat serializer.Format
		wantErr    bool
	}{
		{name: "valid yaml format", format: "yaml", wantFormat: serializer.FormatYAML},
		{name: "valid json format", format: "json", wantFormat: serializer.FormatJSON},
		{name: "valid table format", format: "table", wantFormat: serializer.FormatTable},
		{name: "invalid format xml", format: "xml", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: tt.format,
					},
				},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if (err != nil) != tt.wantErr {
						t.Errorf("parseOutputFormat() error = %v, wantErr %v", err, tt.wantErr)
						return nil
					}
					if !tt.wantErr && got != tt.wantFormat {
						t.Errorf("parseOutputFormat() = %v, want %v", got, tt.wantFormat)
					}
					return nil
				},
			}

			if err := cmd.Run(context.Background(), []string{"test"}); err != nil {
				t.Fatalf("failed to run command: %v", err)
			}
		})
	}
}

func TestCommandLister(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCmd()
	root.Writer = &buf

	require.NoError(t, root.Run(context.Background(), []string{name}))

	out := buf.String()
	assert.Contains(t, out, "assetd commands:")
	for _, c := range []string{"serve", "collect", "indices"} {
		assert.Contains(t, out, c)
	}

	// nil command is ignored
	commandLister(context.Background(), nil)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
interval: 5m
remotePrefix: file-remote
input:
  addresses: ["http://file:9200"]
`), 0o600))

	var got *config.Config
	cmd := &cli.Command{
		Flags: append(discoveryFlags(), configFlag(), logLevelFlag()),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(ctx, c)
			got = cfg
			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"test",
		"--config", path,
		"--interval", "30s",
		"--collector", "hosts",
		"--collector", "pods",
		"--page-size", "50",
		"--log-level", "debug",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 30*time.Second, got.Interval)
	assert.Equal(t, "file-remote", got.RemotePrefix, "unset flags keep file values")
	assert.Equal(t, []string{"hosts", "pods"}, got.Collectors)
	assert.Equal(t, 50, got.PageSize)
	assert.Equal(t, []string{"http://file:9200"}, got.Input.Addresses)
	assert.Equal(t, "debug", got.Log.Level)
}

type noSearch struct{}

func (noSearch) Search(context.Context, *search.Request) (*search.Response, error) {
	return &search.Response{}, nil
}

func TestBuildRunner(t *testing.T) {
	cfg := config.Default()
	cfg.Collectors = []string{"hosts", "containers"}

	r, err := buildRunner(cfg, noSearch{}, serializer.NewDryRunWriter(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hosts", "containers"}, r.Collectors())

	cfg.Collectors = []string{"pods", "pods"}
	r, err = buildRunner(cfg, noSearch{}, serializer.NewDryRunWriter(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"pods", "pods"}, r.Collectors())

	cfg.Collectors = []string{"containers", "services"}
	_, err = buildRunner(cfg, noSearch{}, serializer.NewDryRunWriter(), nil)
	assert.Error(t, err)
}

func TestSummary_TableRows(t *testing.T) {
	report := &runner.Report{
		Duration: 1500 * time.Millisecond,
		Steps: []runner.StepResult{
			{Name: "containers", Assets: 3, Duration: 10 * time.Millisecond},
			{Name: "pods", CollectErr: errors.New(errors.ErrCodeCollectorFailed, "boom")},
			{Name: "hosts", Assets: 2, FailedItems: 1, WriteErr: errors.New(errors.ErrCodeBulkRejected, "rejected")},
		},
	}

	rows := summary{report: report}.TableRows()
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Containers", "3", "0", "10ms", "ok"}, rows[0])
	assert.Equal(t, "collect failed", rows[1][4])
	assert.Equal(t, []string{"Hosts", "2", "1", "0s", "write failed"}, rows[2])
	assert.Equal(t, []string{"Total", "5", "", "1.5s", "2 failed"}, rows[3])

	assert.Empty(t, summary{}.TableRows())

	var buf bytes.Buffer
	require.NoError(t, printSummary(context.Background(), &buf, report))
	assert.True(t, strings.HasPrefix(buf.String(), "COLLECTOR"))
}

func TestResolveIndices(t *testing.T) {
	cfg := config.Default()
	cfg.RemotePrefix = "remote"
	cfg.Indices.Logs = "app-logs-*"

	l := resolveIndices(cfg)
	assert.Equal(t, "remote:app-logs-*", l.Source.Logs)
	assert.Equal(t, "remote:metrics-*,remote:metricbeat-*", l.Source.Metrics)
	assert.Equal(t, "assets-container-default", l.Destination["container"])
	assert.Equal(t, "assets-host-default", l.Destination["host"])
	assert.Equal(t, header.KindIndexListing, l.Kind)

	rows := l.TableRows()
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"source", "traces", "remote:traces-*,remote:apm-*"}, rows[0])
	assert.Equal(t, []string{"destination", "pod", "assets-pod-default"}, rows[4])
}

// telemetryStore answers every search with one document that identifies a
// container, its pod and its node, and fails the test on any bulk request.
type telemetryStore struct {
	t        *testing.T
	searches atomic.Int32
}

func (s *telemetryStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.Copy(io.Discard, r.Body)

	if !strings.HasSuffix(r.URL.Path, "/_search") {
		s.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.searches.Add(1)
	_, _ = io.WriteString(w, `{"took":1,"timed_out":false,"hits":{"hits":[
		{"_index":"traces-1","_id":"1","fields":{
			"container.id":["c1"],
			"kubernetes.pod.uid":["p1"],
			"kubernetes.node.name":["n1"],
			"host.hostname":["n1"]
		}}
	]}}`)
}

func TestCollect_DryRun(t *testing.T) {
	store := &telemetryStore{t: t}
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	out := filepath.Join(t.TempDir(), "assets.json")
	var stderr bytes.Buffer
	root := newRootCmd()
	root.ErrWriter = &stderr

	err := root.Run(context.Background(), []string{name, "collect",
		"--dry-run",
		"--input-address", srv.URL,
		"--format", "json",
		"--output", out,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, store.searches.Load())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var dump serializer.AssetDump
	require.NoError(t, json.Unmarshal(data, &dump))
	require.Equal(t, 3, dump.Count)
	assert.Equal(t, "container:c1", dump.Assets[0].EAN)
	assert.Equal(t, []string{"pod:p1"}, dump.Assets[0].Parents)
	assert.Equal(t, []string{"host:n1"}, dump.Assets[0].References)
	assert.Equal(t, "host:n1", dump.Assets[1].EAN)
	assert.Equal(t, "pod:p1", dump.Assets[2].EAN)

	summaryOut := stderr.String()
	assert.Contains(t, summaryOut, "Containers")
	assert.Contains(t, summaryOut, "0 failed")
}

func TestCollect_RequiresInputStore(t *testing.T) {
	root := newRootCmd()
	root.ErrWriter = io.Discard

	err := root.Run(context.Background(), []string{name, "collect", "--dry-run"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestCollect_RejectsUnknownFormat(t *testing.T) {
	err := newRootCmd().Run(context.Background(), []string{name, "collect", "--dry-run", "--format", "xml"})
	assert.Error(t, err)
}

type noTrigger struct{}

func (noTrigger) Trigger(context.Context) (*runner.Report, error) { return &runner.Report{}, nil }
func (noTrigger) LastReport() *runner.Report                      { return nil }

func TestServerOptions_WithoutElector(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = 9191

	opts := serverOptions(cfg, noTrigger{}, nil, nil)
	assert.Len(t, opts, 3, "no leader option without an elector")
}

// unavailableStore answers every request with 503 and counts requests per
// endpoint.
type unavailableStore struct {
	searches atomic.Int32
	bulks    atomic.Int32
}

func (s *unavailableStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.Copy(io.Discard, r.Body)

	switch {
	case strings.HasSuffix(r.URL.Path, "/_bulk"):
		s.bulks.Add(1)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		s.searches.Add(1)
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = io.WriteString(w, `{"error":{"type":"unavailable_shards_exception","reason":"no shards"},"status":503}`)
}

func TestNewStoreClient_OutputBulkIsSentOnce(t *testing.T) {
	store := &unavailableStore{}
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	output, err := newStoreClient(storeOutput, config.StoreConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	r, err := runner.New(runner.Config{
		Input:    noSearch{},
		Output:   output,
		Interval: time.Minute,
	})
	require.NoError(t, err)

	ts := time.Now()
	c1 := asset.New(asset.KindContainer, "c1", ts)
	c1.AddParent("pod:p1")
	c2 := asset.New(asset.KindContainer, "c2", ts)
	c2.AddParent("pod:p1")
	r.RegisterCollector("containers", collector.Func(func(context.Context, collector.Options) ([]asset.Asset, error) {
		return []asset.Asset{c1, c2}, nil
	}))

	report := r.Run(context.Background())

	assert.EqualValues(t, 1, store.bulks.Load(), "bulk write must not be retried")
	require.Len(t, report.Steps, 1)
	assert.Error(t, report.Steps[0].WriteErr)
}

func TestNewStoreClient_InputSearchIsRetried(t *testing.T) {
	store := &unavailableStore{}
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)

	input, err := newStoreClient(storeInput, config.StoreConfig{Addresses: []string{srv.URL}})
	require.NoError(t, err)

	_, err = input.Search(context.Background(), &search.Request{Index: []string{"traces-*"}, Size: 1})
	require.Error(t, err)
	assert.Greater(t, store.searches.Load(), int32(1))
}
