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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Run metrics
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asset_run_duration_seconds",
			Help:    "Time taken to run all registered collectors",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_runs_total",
			Help: "Total number of collection runs",
		},
		[]string{"status"}, // success or partial
	)

	// Per-collector metrics
	collectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_collector_duration_seconds",
			Help:    "Time taken by a collector to collect and persist its assets",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"collector"},
	)

	assetsCollected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_collected_total",
			Help: "Total number of assets returned by collectors",
		},
		[]string{"collector"},
	)

	collectorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_collector_failures_total",
			Help: "Total number of collector invocations that returned an error",
		},
		[]string{"collector"},
	)

	bulkFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_bulk_failures_total",
			Help: "Total number of bulk requests that failed in transport",
		},
		[]string{"collector"},
	)

	bulkItemFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_bulk_item_failures_total",
			Help: "Total number of assets rejected by the inventory store",
		},
		[]string{"collector"},
	)
)
