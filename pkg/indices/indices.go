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

// Package indices resolves the telemetry index patterns collectors search.
package indices

import "strings"

// Default source index patterns. Each is a comma-separated list of index names
// or wildcard patterns.
const (
	DefaultMetrics = "metrics-*,metricbeat-*"
	DefaultLogs    = "logs-*,filebeat-*"
	DefaultTraces  = "traces-*,apm-*"
)

// Set is the resolved set of source index patterns for one runner.
type Set struct {
	Metrics string `json:"metrics" yaml:"metrics"`
	Logs    string `json:"logs" yaml:"logs"`
	Traces  string `json:"traces" yaml:"traces"`
}

// Default returns the default index set.
func Default() Set {
	return Set{
		Metrics: DefaultMetrics,
		Logs:    DefaultLogs,
		Traces:  DefaultTraces,
	}
}

// WithDefaults fills empty patterns from the default set.
func (s Set) WithDefaults() Set {
	d := Default()
	if s.Metrics == "" {
		s.Metrics = d.Metrics
	}
	if s.Logs == "" {
		s.Logs = d.Logs
	}
	if s.Traces == "" {
		s.Traces = d.Traces
	}
	return s
}

// WithRemotePrefix returns a copy of the set addressing a remote cluster.
// An empty prefix returns the set unchanged.
func (s Set) WithRemotePrefix(prefix string) Set {
	return Set{
		Metrics: AddRemotePrefix(prefix, s.Metrics),
		Logs:    AddRemotePrefix(prefix, s.Logs),
		Traces:  AddRemotePrefix(prefix, s.Traces),
	}
}

// List returns the patterns in search order: traces, metrics, logs.
func (s Set) List() []string {
	return []string{s.Traces, s.Metrics, s.Logs}
}

// AddRemotePrefix qualifies every element of a comma-separated index list with
// "<prefix>:" for cross-cluster search. The result is not idempotent: applying
// it twice yields "p:p:index", so it must be applied exactly once.
func AddRemotePrefix(prefix, patterns string) string {
	if prefix == "" {
		return patterns
	}
	parts := strings.Split(patterns, ",")
	for i, p := range parts {
		parts[i] = prefix + ":" + p
	}
	return strings.Join(parts, ",")
}
