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

package serializer

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/header"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// AssetDump is a point-in-time listing of discovered assets.
type AssetDump struct {
	header.Header `json:",inline" yaml:",inline"`

	Generated time.Time     `json:"generated" yaml:"generated"`
	Count     int           `json:"count" yaml:"count"`
	Assets    []asset.Asset `json:"assets" yaml:"assets"`
}

// TableHeader implements Table.
func (d *AssetDump) TableHeader() []string {
	return []string{"INDEX", "EAN", "PARENTS", "REFERENCES"}
}

// TableRows implements Table.
func (d *AssetDump) TableRows() [][]string {
	rows := make([][]string, 0, len(d.Assets))
	for _, a := range d.Assets {
		rows = append(rows, []string{
			asset.IndexName(a.Kind),
			a.EAN,
			joinOrDash(a.Parents),
			joinOrDash(a.References),
		})
	}
	return rows
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

// DryRunWriter accepts bulk bodies in place of the inventory store and keeps
// the documents for later serialization. It never rejects a well-formed asset.
type DryRunWriter struct {
	// Version is recorded in the dump header.
	Version string

	mu     sync.Mutex
	assets []asset.Asset
	now    func() time.Time
}

// NewDryRunWriter creates an empty DryRunWriter.
func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{now: time.Now}
}

// Bulk records the documents of body and reports one created item per
// document. Entries that are not assets are reported as item errors.
func (w *DryRunWriter) Bulk(ctx context.Context, body []any) (*search.BulkResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(body) == 0 || len(body)%2 != 0 {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "bulk body must alternate actions and documents",
			map[string]any{"entries": len(body)})
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	resp := &search.BulkResponse{Items: make([]map[string]search.BulkItem, 0, len(body)/2)}
	for i := 0; i < len(body); i += 2 {
		item := search.BulkItem{Status: http.StatusCreated}
		if action, ok := body[i].(search.BulkAction); ok && action.Create != nil {
			item.Index = action.Create.Index
		}

		a, ok := body[i+1].(asset.Asset)
		if !ok {
			resp.Errors = true
			item.Status = http.StatusBadRequest
			item.Error = &search.BulkError{
				Type:   "document_parsing_exception",
				Reason: fmt.Sprintf("unsupported document type %T", body[i+1]),
			}
		} else {
			w.assets = append(w.assets, a)
		}
		resp.Items = append(resp.Items, map[string]search.BulkItem{"create": item})
	}
	return resp, nil
}

// Assets returns the recorded assets in write order.
func (w *DryRunWriter) Assets() []asset.Asset {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]asset.Asset, len(w.assets))
	copy(out, w.assets)
	return out
}

// Dump returns the recorded assets ordered by kind, then id.
func (w *DryRunWriter) Dump() *AssetDump {
	assets := w.Assets()
	sort.SliceStable(assets, func(i, j int) bool {
		if assets[i].Kind != assets[j].Kind {
			return assets[i].Kind < assets[j].Kind
		}
		return assets[i].ID < assets[j].ID
	})
	d := &AssetDump{
		Generated: w.now().UTC(),
		Count:     len(assets),
		Assets:    assets,
	}
	d.InitAt(header.KindAssetDump, header.APIVersion, w.Version, d.Generated)
	return d
}

// Flush serializes the dump to s.
func (w *DryRunWriter) Flush(ctx context.Context, s Serializer) error {
	return s.Serialize(ctx, w.Dump())
}
