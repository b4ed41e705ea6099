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


// Package cli implements the assetd command-line interface.
//
// # Commands
//
// serve - Run discovery continuously:
//
//	assetd serve --config /etc/assetd/assetd.yaml [--leader-elect]
//
// Runs a discovery cycle on every interval and exposes the operations server
// (/health, /ready, /metrics, POST /v1/collect). With --leader-elect only the
// replica holding the Lease collects.
//
// collect - Run one cycle:
//
//	assetd collect --config assetd.yaml [--dry-run] [--output assets.yaml]
//
// Runs every configured collector once. A dry run writes nothing to the
// inventory store and serializes the assets that would have been created.
//
// indices - Print index layout:
//
//	assetd indices --remote-prefix prod --format table
//
// Prints the source index patterns after defaults and the remote prefix are
// applied, and the destination index of each asset kind.
//
// # Global Flags
//
//	--config, -c   Configuration file (env ASSETD_CONFIG)
//	--log-level    Log level, overrides log.level (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Configuration Precedence
//
// Flags override ASSETD_* environment variables, which override the
// configuration file, which overrides built-in defaults.
//
// # Output Formats
//
// collect and indices accept --format yaml (default), json or table, and
// --output as a file path, a cm://namespace/name ConfigMap URI, or stdout
// when empty.
package cli
