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

package runner

import (
	"encoding/json"
	"time"
)

// StepResult is the outcome of one collector within a run.
type StepResult struct {
	Name     string        `json:"name" yaml:"name"`
	Assets   int           `json:"assets" yaml:"assets"`
	Duration time.Duration `json:"duration" yaml:"duration"`

	// CollectErr is set when the collector failed; no write was attempted.
	CollectErr error `json:"-" yaml:"-"`

	// WriteErr is set when the bulk request failed or the store rejected items.
	WriteErr error `json:"-" yaml:"-"`

	// FailedItems is the number of assets the store rejected.
	FailedItems int `json:"failedItems,omitempty" yaml:"failedItems,omitempty"`
}

// OK reports whether the step collected and persisted without error.
func (s StepResult) OK() bool {
	return s.CollectErr == nil && s.WriteErr == nil
}

// MarshalJSON includes error messages, which error values do not encode on their own.
func (s StepResult) MarshalJSON() ([]byte, error) {
	type plain StepResult
	out := struct {
		plain
		CollectError string `json:"collectError,omitempty"`
		WriteError   string `json:"writeError,omitempty"`
	}{plain: plain(s)}
	if s.CollectErr != nil {
		out.CollectError = s.CollectErr.Error()
	}
	if s.WriteErr != nil {
		out.WriteError = s.WriteErr.Error()
	}
	return json.Marshal(out)
}

// Report summarizes a run.
type Report struct {
	RunID    string        `json:"runID" yaml:"runID"`
	From     time.Time     `json:"from" yaml:"from"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Steps    []StepResult  `json:"steps" yaml:"steps"`
}

// TotalAssets returns the number of assets collected across all steps.
func (r *Report) TotalAssets() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Steps {
		n += s.Assets
	}
	return n
}

// Failed returns the number of steps that did not complete cleanly.
func (r *Report) Failed() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, s := range r.Steps {
		if !s.OK() {
			n++
		}
	}
	return n
}
