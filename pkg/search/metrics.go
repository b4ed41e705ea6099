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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_store_request_duration_seconds",
			Help:    "Latency of telemetry and inventory store requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"store", "op"}, // op: search or bulk
	)

	storeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_store_requests_total",
			Help: "Total number of store requests by HTTP status",
		},
		[]string{"store", "op", "status"}, // status: HTTP code or "error" for transport failures
	)
)
