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

package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/runner"
)

// Trigger sources, used as metric labels.
const (
	SourceInterval = "interval"
	SourceManual   = "manual"
)

const runKey = "run"

// Runner runs a single collection cycle.
type Runner interface {
	Run(ctx context.Context) *runner.Report
}

// Scheduler drives a Runner on a fixed interval and on demand. At most one
// run is in flight at a time; concurrent requests share it.
type Scheduler struct {
	runner   Runner
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger

	group singleflight.Group

	mu   sync.RWMutex
	last *runner.Report
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunTimeout bounds the duration of a single run.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a scheduler.
func New(r Runner, interval time.Duration, opts ...Option) (*Scheduler, error) {
	if r == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "scheduler runner is required")
	}
	if interval <= 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "scheduler interval must be positive",
			map[string]any{"interval": interval.String()})
	}

	s := &Scheduler{
		runner:   r,
		interval: interval,
		timeout:  defaults.TriggerTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start runs a cycle immediately, then once per interval until ctx is
// canceled. It blocks and returns nil on cancellation.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("starting scheduler", slog.Duration("interval", s.interval))

	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	report, shared := s.do(ctx, SourceInterval)
	if shared && report != nil {
		s.logger.Debug("interval run joined an in-flight run", slog.String("runID", report.RunID))
	}
}

// Trigger starts a run now, or joins the run already in flight. The run is
// detached from ctx so that an abandoned caller does not cancel it; ctx only
// bounds how long the caller waits.
func (s *Scheduler) Trigger(ctx context.Context) (*runner.Report, error) {
	ch := s.group.DoChan(runKey, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), SourceManual), nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(errors.ErrCodeTimeout, "gave up waiting for collection run", ctx.Err())
	case res := <-ch:
		if res.Shared {
			triggersShared.Inc()
		}
		report, _ := res.Val.(*runner.Report)
		return report, nil
	}
}

func (s *Scheduler) do(ctx context.Context, source string) (*runner.Report, bool) {
	v, _, shared := s.group.Do(runKey, func() (any, error) {
		return s.run(ctx, source), nil
	})
	if shared {
		triggersShared.Inc()
	}
	report, _ := v.(*runner.Report)
	return report, shared
}

func (s *Scheduler) run(ctx context.Context, source string) *runner.Report {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := s.runner.Run(ctx)

	runsTriggered.WithLabelValues(source).Inc()
	if report != nil {
		lastRunTimestamp.Set(float64(report.Started.Unix()))
		lastRunAssets.Set(float64(report.TotalAssets()))
	}

	s.mu.Lock()
	s.last = report
	s.mu.Unlock()

	return report
}

// LastReport returns the report of the most recent completed run, or nil.
func (s *Scheduler) LastReport() *runner.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
