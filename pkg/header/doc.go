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


// Package header provides the common document header for assetd output.
//
// Asset dumps and index listings embed Header inline so that a file or
// ConfigMap read back later identifies what it holds and which assetd
// version produced it:
//
//	kind: AssetDump
//	apiVersion: assetd.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-06-01T12:00:00Z"
//	  version: v0.3.0
//
// Usage:
//
//	type Dump struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    ...
//	}
//
//	d.Init(header.KindAssetDump, header.APIVersion, version)
package header
