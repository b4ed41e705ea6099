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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_scheduler_runs_total",
			Help: "Total number of runs started by the scheduler",
		},
		[]string{"source"}, // interval or manual
	)

	triggersShared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_scheduler_shared_triggers_total",
			Help: "Total number of triggers that joined an in-flight run",
		},
	)

	lastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_scheduler_last_run_timestamp_seconds",
			Help: "Start time of the last completed run",
		},
	)

	lastRunAssets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_scheduler_last_run_assets",
			Help: "Number of assets collected by the last completed run",
		},
	)
)
