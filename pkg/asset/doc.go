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

// Package asset defines the inventory document produced by every collector.
//
// # Overview
//
// An Asset is one observation of an infrastructure entity (container, pod, host)
// captured during a discovery cycle. Each asset is identified globally by its
// entity-anchor-name (EAN), which is always "<kind>:<id>":
//
//	a := asset.New(asset.KindContainer, "c1", time.Now())
//	a.EAN // "container:c1"
//
// Assets form a topology. Parents are ownership edges (a container belongs to a
// pod or a host), references are informational links (the node a container runs
// on). A reference never duplicates a parent:
//
//	a.AddParent(asset.EAN(asset.KindPod, "p1"))
//	a.AddReference(asset.EAN(asset.KindHost, "n1"))
//
// # Persisted Layout
//
// Documents are written to one index per kind, named by IndexName:
//
//	assets-container-default
//	assets-pod-default
//	assets-host-default
//
// The JSON field names of Asset are the stored field names (@timestamp,
// asset.kind, asset.id, asset.ean, asset.parents, asset.references).
package asset
