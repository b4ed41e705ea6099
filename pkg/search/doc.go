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

// Package search is the contract between discovery and its two stores.
//
// Collectors depend on Searcher, the runner depends on BulkWriter. Both are
// implemented by Client over the Elasticsearch HTTP API:
//
//	input, err := search.NewClient("input", search.Config{
//	    Addresses: []string{"https://telemetry:9200"},
//	    APIKey:    key,
//	})
//
//	res, err := input.Search(ctx, &search.Request{
//	    Index:    []string{"traces-*", "metrics-*"},
//	    Size:     1000,
//	    Collapse: &search.Collapse{Field: "container.id"},
//	    Query:    &q,
//	})
//
// A bulk body alternates action descriptors and documents:
//
//	body := []any{search.CreateAction("assets-container-default"), doc}
//	res, err := output.Bulk(ctx, body)
//	if err == nil && res.Errors {
//	    failed := res.Failed()
//	}
//
// Transport failures return errors coded SERVICE_UNAVAILABLE; non-2xx
// responses are mapped to codes by HTTP status.
package search
