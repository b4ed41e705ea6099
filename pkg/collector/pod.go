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

// PodCollector discovers Kubernetes pods and links each to the node it is
// scheduled on.
type PodCollector struct {
	PageSize int
	Now      func() time.Time
}

var podQuery = collapseQuery{
	collapse: FieldPodUID,
	fields: []string{
		FieldPodUID,
		FieldNodeName,
		FieldClusterName,
	},
	filter: []search.Query{
		search.Exists(FieldPodUID),
	},
	should: []search.Query{
		search.Exists(FieldNodeName),
	},
}

// Collect returns one asset per distinct pod uid seen since opts.From.
func (c *PodCollector) Collect(ctx context.Context, opts Options) ([]asset.Asset, error) {
	hits, err := podQuery.run(ctx, "pod", opts, pageSizeOrDefault(c.PageSize))
	if err != nil {
		return nil, err
	}

	observed := clockOrDefault(c.Now)()
	pods := make([]asset.Asset, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))
	skipped := 0

	for _, hit := range hits {
		uid := hit.Field(FieldPodUID)
		node := hit.Field(FieldNodeName)
		if uid == "" || node == "" {
			skipped++
			continue
		}
		if _, dup := seen[uid]; dup {
			continue
		}
		seen[uid] = struct{}{}

		a := asset.New(asset.KindPod, uid, observed)
		a.AddParent(asset.EAN(asset.KindHost, node))
		if cluster := hit.Field(FieldClusterName); cluster != "" {
			a.AddReference(asset.EAN(asset.KindCluster, cluster))
		}
		pods = append(pods, a)
	}

	if skipped > 0 {
		opts.logger().Warn("skipped pod documents without node name", slog.Int("skipped", skipped))
	}

	return pods, nil
}
