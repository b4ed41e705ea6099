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

// Package scheduler triggers collection runs periodically and on demand.
//
// Start runs one cycle immediately and then one per interval. Trigger runs a
// cycle on request, for example from the ops server. Both paths share a
// singleflight group, so a trigger that arrives while a run is in flight
// waits for that run and receives its report instead of starting another.
package scheduler
