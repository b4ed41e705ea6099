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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
)

func TestHostCollector_Collect(t *testing.T) {
	s := &fakeSearcher{}
	for _, h := range []map[string]string{
		{FieldHostHostname: "h1", FieldClusterName: "prod"},
		{FieldHostHostname: "h2"},
		{FieldHostHostname: "h1"},
		{FieldHostName: "no-hostname"},
	} {
		s.hits = append(s.hits, hit(h))
	}

	c := &HostCollector{Now: fixedClock}
	got, err := c.Collect(context.Background(), testOptions(s))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "host:h1", got[0].EAN)
	assert.Equal(t, []string{"cluster:prod"}, got[0].References)
	assert.Equal(t, "host:h2", got[1].EAN)

	for _, a := range got {
		assert.Equal(t, asset.KindHost, a.Kind)
		assert.Empty(t, a.Parents)
		assert.NoError(t, a.Validate())
	}

	require.Len(t, s.last.Query.Bool.Filter, 2)
	assert.Equal(t, FieldHostHostname, s.last.Query.Bool.Filter[1].Exists.Field)
}
