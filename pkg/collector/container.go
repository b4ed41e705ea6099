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
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// ContainerCollector discovers containers from traces, metrics and logs and
// links each one to its owning pod, or to its host when no pod is known.
type ContainerCollector struct {
	// PageSize caps the number of collapsed containers read per cycle.
	// Zero uses defaults.CollectorPageSize.
	PageSize int

	// Now returns the collection instant stamped on every asset.
	Now func() time.Time
}

var containerQuery = collapseQuery{
	collapse: FieldContainerID,
	fields: []string{
		FieldContainerID,
		fieldKubernetesGroup,
		FieldCloudProvider,
		FieldClusterName,
		FieldHostName,
		FieldHostHostname,
	},
	should: []search.Query{
		search.Exists(FieldK8sContainerID),
		search.Exists(FieldPodUID),
		search.Exists(FieldNodeName),
		search.Exists(FieldHostHostname),
	},
}

// Collect returns one asset per distinct container id seen since opts.From.
func (c *ContainerCollector) Collect(ctx context.Context, opts Options) ([]asset.Asset, error) {
	hits, err := containerQuery.run(ctx, "container", opts, pageSizeOrDefault(c.PageSize))
	if err != nil {
		return nil, err
	}

	logger := opts.logger()
	observed := clockOrDefault(c.Now)()
	containers := make([]asset.Asset, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	skipped := 0

	for _, hit := range hits {
		a, ok := containerFromHit(logger, hit, observed)
		if !ok {
			skipped++
			continue
		}
		// collapse already deduplicates; this guards stores that ignore it
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		containers = append(containers, a)
	}

	if skipped > 0 {
		logger.Warn("skipped container documents without container id or owner",
			slog.Int("skipped", skipped),
			slog.Int("hits", len(hits)))
	}

	return containers, nil
}

// containerFromHit applies the parent selection policy: pod first, then host.
// A document that identifies neither yields no asset.
func containerFromHit(logger *slog.Logger, hit search.Hit, observed time.Time) (asset.Asset, bool) {
	id := hit.Field(FieldContainerID)
	if id == "" {
		return asset.Asset{}, false
	}

	var parent string
	if podUID := hit.Field(FieldPodUID); podUID != "" {
		parent = asset.EAN(asset.KindPod, podUID)
	} else if hostname := hit.Field(FieldHostHostname); hostname != "" {
		parent = asset.EAN(asset.KindHost, hostname)
	} else {
		logger.Debug("container has no pod uid or hostname", slog.String("id", id), slog.String("index", hit.Index))
		return asset.Asset{}, false
	}

	a := asset.New(asset.KindContainer, id, observed)
	a.AddParent(parent)

	if nodeName := hit.Field(FieldNodeName); nodeName != "" {
		a.AddReference(asset.EAN(asset.KindHost, nodeName))
	}

	return a, true
}
