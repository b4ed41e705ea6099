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

// Package collector discovers inventory assets from telemetry.
//
// # Overview
//
// A collector queries the telemetry store (traces, metrics and logs indices)
// for evidence of one entity kind over a sliding window and returns the
// entities it found as assets. Collectors hold no state between cycles.
//
// # Core Interface
//
//	type Collector interface {
//	    Collect(ctx context.Context, opts Options) ([]asset.Asset, error)
//	}
//
// Options carries the search client, the window start and the resolved
// index set. Func adapts a plain function:
//
//	c := collector.Func(func(ctx context.Context, opts collector.Options) ([]asset.Asset, error) {
//	    return nil, nil
//	})
//
// # Available Collectors
//
// Container: collapses on container.id and links each container to its pod
// (kubernetes.pod.uid), falling back to its host (host.hostname). The node
// name is kept as a reference. Documents identifying neither owner are skipped.
//
// Pod: collapses on kubernetes.pod.uid and links each pod to its node.
//
// Host: collapses on host.hostname. Hosts are topology roots.
//
// Every query filters on @timestamp >= from, boosts documents carrying
// Kubernetes or host identity, ranks by score then recency, and reads at
// most PageSize collapsed documents without paginating.
//
// # Factory Pattern
//
//	factory := collector.NewDefaultFactory(collector.WithPageSize(5000))
//	c, err := factory.Create(collector.NameContainers)
package collector
