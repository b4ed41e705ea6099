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
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// HostCollector discovers hosts. Hosts are topology roots and carry no
// parents; the cluster they report is kept as a reference.
type HostCollector struct {
	PageSize int
	Now      func() time.Time
}

var hostQuery = collapseQuery{
	collapse: FieldHostHostname,
	fields: []string{
		FieldHostHostname,
		FieldHostName,
		FieldCloudProvider,
		FieldClusterName,
	},
	filter: []search.Query{
		search.Exists(FieldHostHostname),
	},
	should: []search.Query{
		search.Exists(FieldCloudProvider),
		search.Exists(FieldClusterName),
	},
}

// Collect returns one asset per distinct hostname seen since opts.From.
func (c *HostCollector) Collect(ctx context.Context, opts Options) ([]asset.Asset, error) {
	hits, err := hostQuery.run(ctx, "host", opts, pageSizeOrDefault(c.PageSize))
	if err != nil {
		return nil, err
	}

	observed := clockOrDefault(c.Now)()
	hosts := make([]asset.Asset, 0, len(hits))
	seen := make(map[string]struct{}, len(hits))

	for _, hit := range hits {
		hostname := hit.Field(FieldHostHostname)
		if hostname == "" {
			continue
		}
		if _, dup := seen[hostname]; dup {
			continue
		}
		seen[hostname] = struct{}{}

		a := asset.New(asset.KindHost, hostname, observed)
		if cluster := hit.Field(FieldClusterName); cluster != "" {
			a.AddReference(asset.EAN(asset.KindCluster, cluster))
		}
		hosts = append(hosts, a)
	}

	return hosts, nil
}
