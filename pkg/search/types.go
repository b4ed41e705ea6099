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
	"context"
	"fmt"
)

// Searcher runs a search request against a telemetry store.
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// BulkWriter submits a bulk request to an inventory store. The body is an
// alternating sequence of BulkAction descriptors and documents.
type BulkWriter interface {
	Bulk(ctx context.Context, body []any) (*BulkResponse, error)
}

// SortOrder is the direction of a sort clause.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortField is a single sort clause, e.g. {"_score": "desc"}.
type SortField map[string]SortOrder

// Collapse deduplicates hits to one representative per distinct field value.
type Collapse struct {
	Field string `json:"field"`
}

// Request is a search request. Index is sent in the URL, everything else in the body.
type Request struct {
	Index    []string    `json:"-"`
	Size     int         `json:"size"`
	Collapse *Collapse   `json:"collapse,omitempty"`
	Sort     []SortField `json:"sort,omitempty"`
	Source   bool        `json:"_source"`
	Fields   []string    `json:"fields,omitempty"`
	Query    *Query      `json:"query,omitempty"`
}

// Query is a query clause. Exactly one member is expected to be set.
type Query struct {
	Bool   *BoolQuery            `json:"bool,omitempty"`
	Range  map[string]RangeQuery `json:"range,omitempty"`
	Exists *ExistsQuery          `json:"exists,omitempty"`
}

// BoolQuery combines clauses. Filter clauses restrict the result set, should
// clauses only contribute to relevance scoring when filters are present.
type BoolQuery struct {
	Filter []Query `json:"filter,omitempty"`
	Should []Query `json:"should,omitempty"`
}

// RangeQuery bounds a field value.
type RangeQuery struct {
	GTE    any    `json:"gte,omitempty"`
	LT     any    `json:"lt,omitempty"`
	Format string `json:"format,omitempty"`
}

// ExistsQuery matches documents with a non-null value for Field.
type ExistsQuery struct {
	Field string `json:"field"`
}

// Bool returns a bool query with the given filter and should clauses.
func Bool(filter, should []Query) Query {
	return Query{Bool: &BoolQuery{Filter: filter, Should: should}}
}

// Range returns a range query on field with an inclusive lower bound.
func Range(field string, gte any, format string) Query {
	return Query{Range: map[string]RangeQuery{field: {GTE: gte, Format: format}}}
}

// Exists returns an exists query on field.
func Exists(field string) Query {
	return Query{Exists: &ExistsQuery{Field: field}}
}

// Response is the subset of a search response collectors consume.
type Response struct {
	Took     int  `json:"took"`
	TimedOut bool `json:"timed_out"`
	Hits     Hits `json:"hits"`
}

// Hits wraps the matched documents.
type Hits struct {
	Hits []Hit `json:"hits"`
}

// Hit is one matched document. With _source disabled, requested values are
// returned in Fields, always as arrays.
type Hit struct {
	Index  string           `json:"_index"`
	ID     string           `json:"_id"`
	Score  *float64         `json:"_score,omitempty"`
	Fields map[string][]any `json:"fields,omitempty"`
}

// Field returns the first value of the named field as a string, or "" if the
// field is absent, empty or null.
func (h Hit) Field(name string) string {
	values := h.Fields[name]
	if len(values) == 0 || values[0] == nil {
		return ""
	}
	switch v := values[0].(type) {
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// BulkAction is the action descriptor line preceding a document in a bulk body.
type BulkAction struct {
	Create *BulkTarget `json:"create,omitempty"`
	Index  *BulkTarget `json:"index,omitempty"`
}

// BulkTarget addresses a document in a bulk action.
type BulkTarget struct {
	Index string `json:"_index"`
	ID    string `json:"_id,omitempty"`
}

// CreateAction returns a create action targeting index with a store-assigned id.
func CreateAction(index string) BulkAction {
	return BulkAction{Create: &BulkTarget{Index: index}}
}

// BulkResponse is the response to a bulk request. Errors is true when at
// least one item failed.
type BulkResponse struct {
	Took   int                   `json:"took"`
	Errors bool                  `json:"errors"`
	Items  []map[string]BulkItem `json:"items"`
}

// BulkItem is the per-document outcome of a bulk request.
type BulkItem struct {
	Index  string     `json:"_index"`
	ID     string     `json:"_id,omitempty"`
	Status int        `json:"status"`
	Error  *BulkError `json:"error,omitempty"`
}

// BulkError describes why a bulk item failed.
type BulkError struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Failed returns the items that carry an error, in request order.
func (r *BulkResponse) Failed() []BulkItem {
	if r == nil {
		return nil
	}
	var failed []BulkItem
	for _, item := range r.Items {
		for _, result := range item {
			if result.Error != nil || result.Status >= 300 {
				failed = append(failed, result)
			}
		}
	}
	return failed
}
