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


package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NVIDIA/asset-discovery/pkg/collector"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
)

// Validate reports every problem in the configuration as one INVALID_REQUEST
// error.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateDryRun is Validate without the output store, which dry runs
// replace with a local writer.
func (c *Config) ValidateDryRun() error {
	return c.validate(false)
}

func (c *Config) validate(requireOutput bool) error {
	var problems []string

	if c.Interval <= 0 {
		problems = append(problems, fmt.Sprintf("interval must be positive, got %s", c.Interval))
	}
	if c.PageSize <= 0 {
		problems = append(problems, fmt.Sprintf("pageSize must be positive, got %d", c.PageSize))
	}

	if len(c.Collectors) == 0 {
		problems = append(problems, "at least one collector is required")
	}
	supported := collector.SupportedCollectors()
	// Repeated names are allowed; each entry runs independently.
	for _, name := range c.Collectors {
		if !slices.Contains(supported, name) {
			problems = append(problems, fmt.Sprintf("unknown collector %q (supported: %s)",
				name, strings.Join(supported, ", ")))
		}
	}

	problems = append(problems, c.Input.problems("input")...)
	if requireOutput {
		problems = append(problems, c.Output.problems("output")...)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be in 1-65535, got %d", c.Server.Port))
	}
	if c.Server.RateLimit <= 0 || c.Server.RateLimitBurst <= 0 {
		problems = append(problems, "server.rateLimit and server.rateLimitBurst must be positive")
	}

	if c.LeaderElection.Enabled && c.LeaderElection.LeaseName == "" {
		problems = append(problems, "leaderElection.leaseName is required when leader election is enabled")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.NewWithContext(errors.ErrCodeInvalidRequest, "invalid configuration: "+problems[0],
		map[string]any{"problems": problems})
}

func (s StoreConfig) problems(name string) []string {
	var out []string
	if len(s.Addresses) == 0 && s.CloudID == "" {
		out = append(out, name+".addresses or "+name+".cloudID is required")
	}
	for _, a := range s.Addresses {
		if !strings.HasPrefix(a, "http://") && !strings.HasPrefix(a, "https://") {
			out = append(out, fmt.Sprintf("%s address %q must be an http(s) URL", name, a))
		}
	}
	if s.Timeout < 0 {
		out = append(out, name+".timeout must not be negative")
	}
	return out
}
