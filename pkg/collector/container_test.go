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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

func TestContainerCollector_Collect(t *testing.T) {
	tests := []struct {
		name   string
		hits   []map[string]string
		expect []asset.Asset
	}{
		{
			name: "pod parent with node reference",
			hits: []map[string]string{
				{FieldContainerID: "c1", FieldPodUID: "p1", FieldNodeName: "n1"},
			},
			expect: []asset.Asset{{
				Timestamp:  testObserved,
				Kind:       asset.KindContainer,
				ID:         "c1",
				EAN:        "container:c1",
				Parents:    []string{"pod:p1"},
				References: []string{"host:n1"},
			}},
		},
		{
			name: "host parent without pod",
			hits: []map[string]string{
				{FieldContainerID: "c2", FieldHostHostname: "h1"},
			},
			expect: []asset.Asset{{
				Timestamp: testObserved,
				Kind:      asset.KindContainer,
				ID:        "c2",
				EAN:       "container:c2",
				Parents:   []string{"host:h1"},
			}},
		},
		{
			name: "pod wins over host",
			hits: []map[string]string{
				{FieldContainerID: "c3", FieldPodUID: "p3", FieldHostHostname: "h3"},
			},
			expect: []asset.Asset{{
				Timestamp: testObserved,
				Kind:      asset.KindContainer,
				ID:        "c3",
				EAN:       "container:c3",
				Parents:   []string{"pod:p3"},
			}},
		},
		{
			name: "node name equal to hostname parent is not repeated",
			hits: []map[string]string{
				{FieldContainerID: "c4", FieldHostHostname: "n4", FieldNodeName: "n4"},
			},
			expect: []asset.Asset{{
				Timestamp: testObserved,
				Kind:      asset.KindContainer,
				ID:        "c4",
				EAN:       "container:c4",
				Parents:   []string{"host:n4"},
			}},
		},
		{
			name: "duplicate container ids yield one asset",
			hits: []map[string]string{
				{FieldContainerID: "c1", FieldPodUID: "p1"},
				{FieldContainerID: "c1", FieldPodUID: "p1"},
			},
			expect: []asset.Asset{{
				Timestamp: testObserved,
				Kind:      asset.KindContainer,
				ID:        "c1",
				EAN:       "container:c1",
				Parents:   []string{"pod:p1"},
			}},
		},
		{
			name: "no owner is skipped",
			hits: []map[string]string{
				{FieldContainerID: "c5"},
			},
			expect: []asset.Asset{},
		},
		{
			name: "no container id is skipped",
			hits: []map[string]string{
				{FieldPodUID: "p6"},
			},
			expect: []asset.Asset{},
		},
		{
			name:   "no hits",
			expect: []asset.Asset{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSearcher{}
			for _, h := range tt.hits {
				s.hits = append(s.hits, hit(h))
			}

			c := &ContainerCollector{Now: fixedClock}
			got, err := c.Collect(context.Background(), testOptions(s))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)

			for _, a := range got {
				assert.NoError(t, a.Validate())
			}
		})
	}
}

func TestContainerCollector_RequestShape(t *testing.T) {
	s := &fakeSearcher{}
	c := &ContainerCollector{Now: fixedClock}

	_, err := c.Collect(context.Background(), testOptions(s))
	require.NoError(t, err)
	require.Equal(t, 1, s.calls)
	assert.Equal(t, 1000, s.last.Size)
	assert.Equal(t, FieldContainerID, s.last.Collapse.Field)
	assert.Contains(t, s.last.Fields, FieldContainerID)
	assert.Contains(t, s.last.Fields, fieldKubernetesGroup)
}

func TestContainerCollector_PageSize(t *testing.T) {
	s := &fakeSearcher{}
	c := &ContainerCollector{PageSize: 5, Now: fixedClock}

	_, err := c.Collect(context.Background(), testOptions(s))
	require.NoError(t, err)
	assert.Equal(t, 5, s.last.Size)
}

func TestContainerCollector_SearchError(t *testing.T) {
	s := &fakeSearcher{err: fmt.Errorf("connection refused")}
	c := &ContainerCollector{Now: fixedClock}

	got, err := c.Collect(context.Background(), testOptions(s))
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Equal(t, errors.ErrCodeCollectorFailed, errors.CodeOf(err))
}

func TestContainerCollector_NonStringFields(t *testing.T) {
	s := &fakeSearcher{hits: []search.Hit{{
		Fields: map[string][]any{
			FieldContainerID:  {"c7"},
			FieldHostHostname: {42},
		},
	}}}
	c := &ContainerCollector{Now: fixedClock}

	got, err := c.Collect(context.Background(), testOptions(s))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"host:42"}, got[0].Parents)
}

func TestContainerCollector_SkipWarningUsesOptionsLogger(t *testing.T) {
	var logs bytes.Buffer
	opts := testOptions(&fakeSearcher{hits: []search.Hit{
		hit(map[string]string{FieldContainerID: "c1", FieldPodUID: "p1"}),
		hit(map[string]string{FieldContainerID: "orphan"}),
	}})
	opts.Logger = slog.New(slog.NewJSONHandler(&logs, nil)).With(slog.String("runID", "run-1"))

	c := &ContainerCollector{Now: fixedClock}
	got, err := c.Collect(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, got, 1)

	out := logs.String()
	assert.Contains(t, out, "skipped container documents")
	assert.Contains(t, out, `"runID":"run-1"`)
	assert.Contains(t, out, `"skipped":1`)
}
