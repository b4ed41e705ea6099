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

// Package runner orchestrates collection cycles.
//
// A Runner holds an ordered registry of collectors. Each call to Run computes
// a sliding window starting Interval before now, invokes every collector in
// registration order, and bulk-writes the returned assets to the inventory
// store with one create action per asset on assets-<kind>-default.
//
// Failures are isolated per collector: a failed collector contributes zero
// assets, a failed or partially rejected bulk write is logged, and neither
// stops the remaining collectors. The outcome of each collector is returned
// as a StepResult in the run's Report.
//
// Usage:
//
//	r, err := runner.New(runner.Config{
//	    Input:    telemetry,
//	    Output:   inventory,
//	    Interval: time.Minute,
//	})
//	if err != nil {
//	    return err
//	}
//	r.RegisterCollector("containers", &collector.ContainerCollector{})
//	report := r.Run(ctx)
//
// Metrics are exported with the asset_ prefix: asset_runs_total,
// asset_run_duration_seconds, asset_collector_duration_seconds,
// asset_collected_total, asset_collector_failures_total,
// asset_bulk_failures_total and asset_bulk_item_failures_total.
package runner
