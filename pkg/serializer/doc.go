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


// Package serializer renders discovery output as JSON, YAML or a text table
// and reads configuration back from files or ConfigMaps.
//
// # Writing
//
// NewFileWriterOrStdout picks the destination from a path:
//
//	s := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://observability/assets")
//	if err := s.Serialize(ctx, dump); err != nil {
//	    return err
//	}
//
// An empty path writes to stdout, cm://namespace/name writes a ConfigMap with
// the keys assets.{json|yaml|txt}, format and timestamp, and anything else is
// treated as a local file. Writers that hold a file implement Closer.
//
// The table format flattens arbitrary values into FIELD/VALUE rows. Values
// implementing Table are rendered with their own columns instead.
//
// # Reading
//
//	cfg, err := serializer.FromFile[config.Config](ctx, "/etc/assetd/config.yaml")
//
// The format is detected from the extension (.json, .yaml, .yml). Reader.Strict
// rejects fields the target type does not declare. Table is write-only.
//
// # Dry runs
//
// DryRunWriter stands in for the inventory store. It accepts the same bulk
// bodies and keeps the documents so they can be flushed through any
// Serializer once a collection run completes.
package serializer
