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

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// collapseQuery describes a windowed, collapsed search over all source indices.
type collapseQuery struct {
	collapse string
	fields   []string
	filter   []search.Query
	should   []search.Query
}

// request builds the search request. Results are ranked by relevance, then
// recency, so the collapsed representative is the most relevant and most
// recent document of its group.
func (q collapseQuery) request(opts Options, size int) *search.Request {
	filter := make([]search.Query, 0, len(q.filter)+1)
	filter = append(filter, search.Range(FieldTimestamp, opts.From.UnixMilli(), "epoch_millis"))
	filter = append(filter, q.filter...)

	query := search.Bool(filter, q.should)

	return &search.Request{
		Index:    opts.Indices.List(),
		Size:     size,
		Collapse: &search.Collapse{Field: q.collapse},
		Sort: []search.SortField{
			{"_score": search.SortDesc},
			{FieldTimestamp: search.SortDesc},
		},
		Source: false,
		Fields: q.fields,
		Query:  &query,
	}
}

// run executes the query and returns the hits.
func (q collapseQuery) run(ctx context.Context, name string, opts Options, size int) ([]search.Hit, error) {
	if opts.Client == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "collector options have no search client")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := opts.Client.Search(ctx, q.request(opts, size))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeCollectorFailed, name+" search failed", err,
			map[string]any{"collapse": q.collapse})
	}
	if res == nil {
		return nil, nil
	}
	return res.Hits.Hits, nil
}

func pageSizeOrDefault(n int) int {
	if n <= 0 {
		return defaults.CollectorPageSize
	}
	return n
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
