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

// Package defaults provides centralized configuration constants for asset discovery.
//
// Values are grouped by component:
//
//   - Discovery cycle: interval (window width), collector page size, trigger timeout
//   - Store clients: per-request timeout and transport retries
//   - Server timeouts: for the operations HTTP server
//   - Kubernetes: leader election lease timing, ConfigMap writes
//   - HTTP client timeouts: dialer and transport tuning for store connections
//
// Import and use constants directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.TriggerTimeout)
//	defer cancel()
package defaults
