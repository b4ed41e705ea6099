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


package header

import (
	"testing"
	"time"
)

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindAssetDump, true},
		{KindIndexListing, true},
		{Kind("Recipe"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestNew_Options(t *testing.T) {
	h := New(
		WithKind(KindAssetDump),
		WithAPIVersion(APIVersion),
		WithMetadata("cluster", "prod"),
	)
	if h.Kind != KindAssetDump || h.APIVersion != APIVersion {
		t.Errorf("unexpected header %+v", h)
	}
	if h.Metadata["cluster"] != "prod" {
		t.Errorf("metadata not applied: %v", h.Metadata)
	}

	var bare Header
	WithMetadata("k", "v")(&bare)
	if bare.Metadata["k"] != "v" {
		t.Errorf("WithMetadata should initialize a nil map")
	}
}

func TestHeader_InitAt(t *testing.T) {
	h := New(WithMetadata("stale", "x"))
	ts := time.Date(2025, 6, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	h.InitAt(KindIndexListing, APIVersion, "v1.2.3", ts)

	if h.Kind != KindIndexListing {
		t.Errorf("Kind = %q", h.Kind)
	}
	if got := h.Metadata["timestamp"]; got != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamp = %q, want UTC RFC3339", got)
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("version = %q", h.Metadata["version"])
	}
	if _, ok := h.Metadata["stale"]; ok {
		t.Error("Init should reset metadata")
	}

	h.Init(KindAssetDump, APIVersion, "")
	if _, ok := h.Metadata["version"]; ok {
		t.Error("empty version should be omitted")
	}
}
