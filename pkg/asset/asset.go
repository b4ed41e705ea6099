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

package asset

import (
	"fmt"
	"slices"
	"time"
)

// Kind is the entity kind of an asset. The set of kinds is open.
type Kind string

const (
	KindContainer Kind = "container"
	KindPod       Kind = "pod"
	KindHost      Kind = "host"
	KindCluster   Kind = "cluster"
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// IsRoot reports whether entities of this kind sit at the top of the
// ownership topology and therefore carry no parents.
func (k Kind) IsRoot() bool {
	switch k {
	case KindHost, KindCluster:
		return true
	default:
		return false
	}
}

const (
	indexPrefix    = "assets"
	indexNamespace = "default"
)

// IndexName returns the inventory index documents of the given kind are written to.
func IndexName(kind Kind) string {
	return fmt.Sprintf("%s-%s-%s", indexPrefix, kind, indexNamespace)
}

// EAN returns the entity-anchor-name for the given kind and id.
func EAN(kind Kind, id string) string {
	return string(kind) + ":" + id
}

// Asset is a single inventory document.
type Asset struct {
	Timestamp  time.Time `json:"@timestamp" yaml:"timestamp"`
	Kind       Kind      `json:"asset.kind" yaml:"kind"`
	ID         string    `json:"asset.id" yaml:"id"`
	EAN        string    `json:"asset.ean" yaml:"ean"`
	Parents    []string  `json:"asset.parents,omitempty" yaml:"parents,omitempty"`
	References []string  `json:"asset.references,omitempty" yaml:"references,omitempty"`
}

// New creates an asset observed at the given time. The EAN is derived from
// kind and id and must not be assigned independently.
func New(kind Kind, id string, observed time.Time) Asset {
	return Asset{
		Timestamp: observed.UTC(),
		Kind:      kind,
		ID:        id,
		EAN:       EAN(kind, id),
	}
}

// AddParent appends an ownership edge. Duplicates are ignored, and an EAN
// previously recorded as a reference is promoted to a parent.
func (a *Asset) AddParent(ean string) {
	if slices.Contains(a.Parents, ean) {
		return
	}
	a.References = slices.DeleteFunc(a.References, func(r string) bool { return r == ean })
	if len(a.References) == 0 {
		a.References = nil
	}
	a.Parents = append(a.Parents, ean)
}

// AddReference appends a non-owning link. EANs already present as a parent
// or a reference are ignored.
func (a *Asset) AddReference(ean string) {
	if slices.Contains(a.Parents, ean) || slices.Contains(a.References, ean) {
		return
	}
	a.References = append(a.References, ean)
}

// Validate checks the structural invariants of the asset.
func (a Asset) Validate() error {
	if a.Kind == "" {
		return fmt.Errorf("asset kind is required")
	}
	if a.ID == "" {
		return fmt.Errorf("asset id is required for kind %q", a.Kind)
	}
	if a.EAN != EAN(a.Kind, a.ID) {
		return fmt.Errorf("asset ean %q does not match %q", a.EAN, EAN(a.Kind, a.ID))
	}
	if len(a.Parents) == 0 && !a.Kind.IsRoot() {
		return fmt.Errorf("asset %s has no parents", a.EAN)
	}
	for _, r := range a.References {
		if slices.Contains(a.Parents, r) {
			return fmt.Errorf("asset %s references its parent %s", a.EAN, r)
		}
	}
	return nil
}
