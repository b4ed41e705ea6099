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

package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/indices"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// Options is the read-only context of one collector invocation. The runner
// builds it once per cycle and passes it by value.
type Options struct {
	// Client searches the telemetry store.
	Client search.Searcher

	// From is the inclusive start of the window. There is no upper bound.
	From time.Time

	// Indices are the resolved source index patterns.
	Indices indices.Set

	// Logger carries the caller's run attributes. Nil uses slog.Default().
	Logger *slog.Logger
}

// logger returns Logger, or the default logger when unset.
func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Collector discovers assets of one kind from telemetry.
// Implementations hold no state between calls and must be safe to invoke
// repeatedly with different options.
type Collector interface {
	Collect(ctx context.Context, opts Options) ([]asset.Asset, error)
}

// Func adapts a function to the Collector interface.
type Func func(ctx context.Context, opts Options) ([]asset.Asset, error)

// Collect calls f.
func (f Func) Collect(ctx context.Context, opts Options) ([]asset.Asset, error) {
	return f(ctx, opts)
}

// Telemetry field names read by collectors.
const (
	FieldTimestamp       = "@timestamp"
	FieldContainerID     = "container.id"
	FieldK8sContainerID  = "kubernetes.container.id"
	FieldPodUID          = "kubernetes.pod.uid"
	FieldNodeName        = "kubernetes.node.name"
	FieldHostHostname    = "host.hostname"
	FieldHostName        = "host.name"
	FieldClusterName     = "orchestrator.cluster.name"
	FieldCloudProvider   = "cloud.provider"
	fieldKubernetesGroup = "kubernetes.*"
)
