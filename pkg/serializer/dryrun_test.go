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
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/header"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

func bulkOf(assets ...asset.Asset) []any {
	body := make([]any, 0, 2*len(assets))
	for _, a := range assets {
		body = append(body, search.CreateAction(asset.IndexName(a.Kind)), a)
	}
	return body
}

func TestDryRunWriter_Bulk(t *testing.T) {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	host := asset.New(asset.KindHost, "h1", ts)
	c2 := asset.New(asset.KindContainer, "c2", ts)
	c2.AddParent("host:h1")
	c1 := asset.New(asset.KindContainer, "c1", ts)
	c1.AddParent("pod:p1")

	w := NewDryRunWriter()
	resp, err := w.Bulk(context.Background(), bulkOf(c2, c1))
	require.NoError(t, err)
	assert.False(t, resp.Errors)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "assets-container-default", resp.Items[0]["create"].Index)
	assert.Equal(t, 201, resp.Items[0]["create"].Status)

	_, err = w.Bulk(context.Background(), bulkOf(host))
	require.NoError(t, err)

	assert.Len(t, w.Assets(), 3)

	dump := w.Dump()
	require.Equal(t, 3, dump.Count)
	assert.Equal(t, "container:c1", dump.Assets[0].EAN)
	assert.Equal(t, "container:c2", dump.Assets[1].EAN)
	assert.Equal(t, "host:h1", dump.Assets[2].EAN)
}

func TestDryRunWriter_RejectsMalformedBody(t *testing.T) {
	w := NewDryRunWriter()

	_, err := w.Bulk(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = w.Bulk(context.Background(), []any{search.CreateAction("x")})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	resp, err := w.Bulk(context.Background(), []any{search.CreateAction("x"), "not an asset"})
	require.NoError(t, err)
	assert.True(t, resp.Errors)
	require.Len(t, resp.Failed(), 1)
	assert.Equal(t, "document_parsing_exception", resp.Failed()[0].Error.Type)
	assert.Empty(t, w.Assets())
}

func TestDryRunWriter_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDryRunWriter().Bulk(ctx, bulkOf(asset.New(asset.KindHost, "h1", time.Now())))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDryRunWriter_Flush(t *testing.T) {
	w := NewDryRunWriter()
	w.Version = "v9.9.9"
	pod := asset.New(asset.KindPod, "p1", time.Now())
	pod.AddParent("host:n1")
	pod.AddReference("cluster:prod")
	_, err := w.Bulk(context.Background(), bulkOf(pod))
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, w.Flush(context.Background(), NewWriter(FormatJSON, &buf)))

		var dump AssetDump
		require.NoError(t, json.Unmarshal(buf.Bytes(), &dump))
		assert.Equal(t, 1, dump.Count)
		assert.Equal(t, "pod:p1", dump.Assets[0].EAN)
		assert.Equal(t, header.KindAssetDump, dump.Kind)
		assert.Equal(t, header.APIVersion, dump.APIVersion)
		assert.Equal(t, "v9.9.9", dump.Metadata["version"])
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, w.Flush(context.Background(), NewWriter(FormatTable, &buf)))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "INDEX"))
		assert.Contains(t, out, "assets-pod-default")
		assert.Contains(t, out, "host:n1")
		assert.Contains(t, out, "cluster:prod")
	})
}

func TestAssetDump_TableRowsDash(t *testing.T) {
	d := &AssetDump{Assets: []asset.Asset{asset.New(asset.KindHost, "h1", time.Now())}}
	rows := d.TableRows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"assets-host-default", "host:h1", "-", "-"}, rows[0])
}
