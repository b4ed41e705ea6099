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

package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/collector"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/indices"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// Config holds the runner's dependencies and settings.
type Config struct {
	// Input searches the telemetry store. Required.
	Input search.Searcher

	// Output receives bulk writes of discovered assets. Required.
	Output search.BulkWriter

	// Interval is the length of the look-back window of every run. Must be positive.
	Interval time.Duration

	// RemotePrefix, when set, is prepended to every source index pattern
	// as "<prefix>:" for cross-cluster search.
	RemotePrefix string

	// Indices are the source index patterns. Empty fields use the defaults.
	Indices indices.Set

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Registration is a named collector in the runner's registry.
type Registration struct {
	Name      string
	Collector collector.Collector
}

// Runner runs the registered collectors and persists their output.
type Runner struct {
	input    search.Searcher
	output   search.BulkWriter
	interval time.Duration
	indices  indices.Set
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	collectors []Registration
}

// New creates a runner. The remote prefix is applied to the index set here,
// once, and the result is used for the runner's lifetime.
func New(cfg Config) (*Runner, error) {
	if cfg.Input == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "runner input searcher is required")
	}
	if cfg.Output == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "runner output bulk writer is required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "runner interval must be positive",
			map[string]any{"interval": cfg.Interval.String()})
	}

	r := &Runner{
		input:    cfg.Input,
		output:   cfg.Output,
		interval: cfg.Interval,
		indices:  cfg.Indices.WithDefaults().WithRemotePrefix(cfg.RemotePrefix),
		logger:   cfg.Logger,
		now:      cfg.Now,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

// RegisterCollector appends a collector to the registry. Names are not
// required to be unique; collectors run in registration order.
func (r *Runner) RegisterCollector(name string, c collector.Collector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors = append(r.collectors, Registration{Name: name, Collector: c})
}

// Collectors returns the registered collector names in run order.
func (r *Runner) Collectors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.collectors))
	for _, reg := range r.collectors {
		names = append(names, reg.Name)
	}
	return names
}

// Indices returns the resolved source index set.
func (r *Runner) Indices() indices.Set {
	return r.indices
}

// Interval returns the look-back window.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Run executes one collection cycle. Collectors run sequentially in
// registration order; each collector's output is persisted before the next
// collector starts. Failures are logged and recorded in the report, never
// returned, and never stop later collectors.
func (r *Runner) Run(ctx context.Context) *Report {
	r.mu.Lock()
	regs := make([]Registration, len(r.collectors))
	copy(regs, r.collectors)
	r.mu.Unlock()

	started := r.now()
	report := &Report{
		RunID:   uuid.NewString(),
		From:    started.Add(-r.interval),
		Started: started,
		Steps:   make([]StepResult, 0, len(regs)),
	}
	logger := r.logger.With(slog.String("runID", report.RunID))

	opts := collector.Options{
		Client:  r.input,
		From:    report.From,
		Indices: r.indices,
	}

	logger.Info("starting collection run",
		slog.Time("from", report.From),
		slog.Int("collectors", len(regs)))

	runStart := time.Now()
	for _, reg := range regs {
		report.Steps = append(report.Steps, r.step(ctx, logger, reg, opts))
	}
	report.Duration = time.Since(runStart)

	runDuration.Observe(report.Duration.Seconds())
	if report.Failed() > 0 {
		runsTotal.WithLabelValues("partial").Inc()
	} else {
		runsTotal.WithLabelValues("success").Inc()
	}

	logger.Info("collection run complete",
		slog.Int("assets", report.TotalAssets()),
		slog.Int("failedSteps", report.Failed()),
		slog.Duration("duration", report.Duration))

	return report
}

// step collects and persists the output of a single collector.
func (r *Runner) step(ctx context.Context, logger *slog.Logger, reg Registration, opts collector.Options) (res StepResult) {
	res.Name = reg.Name
	logger = logger.With(slog.String("collector", reg.Name))
	opts.Logger = logger

	start := time.Now()
	defer func() {
		res.Duration = time.Since(start)
		collectorDuration.WithLabelValues(reg.Name).Observe(res.Duration.Seconds())
	}()

	assets, err := collect(ctx, reg.Collector, opts)
	if err != nil {
		res.CollectErr = err
		collectorFailures.WithLabelValues(reg.Name).Inc()
		logger.Error("collector failed",
			slog.String("code", string(errors.CodeOf(err))),
			slog.String("error", err.Error()))
		return res
	}

	res.Assets = len(assets)
	assetsCollected.WithLabelValues(reg.Name).Add(float64(len(assets)))
	logger.Info("collected assets", slog.Int("count", len(assets)))

	if len(assets) == 0 {
		return res
	}

	resp, err := r.output.Bulk(ctx, BuildBulkBody(assets))
	if err != nil {
		res.WriteErr = err
		bulkFailures.WithLabelValues(reg.Name).Inc()
		logger.Error("failed to write assets",
			slog.Int("count", len(assets)),
			slog.String("code", string(errors.CodeOf(err))),
			slog.String("error", err.Error()))
		return res
	}

	if resp != nil && resp.Errors {
		failed := resp.Failed()
		res.FailedItems = len(failed)
		res.WriteErr = errors.NewWithContext(errors.ErrCodeBulkRejected,
			fmt.Sprintf("%d of %d assets rejected", len(failed), len(assets)),
			map[string]any{"collector": reg.Name})
		bulkItemFailures.WithLabelValues(reg.Name).Add(float64(len(failed)))

		raw, mErr := json.Marshal(resp)
		if mErr != nil {
			raw = []byte(mErr.Error())
		}
		logger.Error("bulk write reported item errors",
			slog.Int("failed", len(failed)),
			slog.String("response", string(raw)))
	}

	return res
}

// collect invokes the collector, converting a panic into an error.
func collect(ctx context.Context, c collector.Collector, opts collector.Options) (assets []asset.Asset, err error) {
	defer func() {
		if p := recover(); p != nil {
			assets = nil
			err = errors.NewWithContext(errors.ErrCodeCollectorFailed, "collector panicked",
				map[string]any{"panic": fmt.Sprint(p)})
		}
	}()
	return c.Collect(ctx, opts)
}

// BuildBulkBody returns the bulk body for assets: a create action on the
// kind's inventory index followed by the document, for every asset.
func BuildBulkBody(assets []asset.Asset) []any {
	body := make([]any, 0, 2*len(assets))
	for _, a := range assets {
		body = append(body, search.CreateAction(asset.IndexName(a.Kind)), a)
	}
	return body
}
