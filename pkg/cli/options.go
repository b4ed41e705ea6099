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


package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/asset-discovery/pkg/collector"
	"github.com/NVIDIA/asset-discovery/pkg/config"
	"github.com/NVIDIA/asset-discovery/pkg/logging"
	"github.com/NVIDIA/asset-discovery/pkg/runner"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// discoveryFlags override configuration values shared by serve and collect.
func discoveryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:  "interval",
			Usage: "Period between cycles and width of the search window",
		},
		&cli.StringFlag{
			Name:  "remote-prefix",
			Usage: "Cross-cluster search alias prepended to source index patterns",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "Maximum collapsed documents read per collector per cycle",
		},
		&cli.StringSliceFlag{
			Name:  "collector",
			Usage: fmt.Sprintf("Collector to run, in order (repeatable) %v", collector.SupportedCollectors()),
		},
		&cli.StringSliceFlag{
			Name:  "input-address",
			Usage: "Telemetry store URL (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "output-address",
			Usage: "Inventory store URL (repeatable)",
		},
	}
}

// loadConfig reads the configuration file and environment, then applies
// flags that were set explicitly. Validation is left to the caller.
func loadConfig(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Read(ctx, cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if cmd.IsSet("interval") {
		cfg.Interval = cmd.Duration("interval")
	}
	if cmd.IsSet("remote-prefix") {
		cfg.RemotePrefix = cmd.String("remote-prefix")
	}
	if cmd.IsSet("page-size") {
		cfg.PageSize = int(cmd.Int("page-size"))
	}
	if cmd.IsSet("collector") {
		cfg.Collectors = cmd.StringSlice("collector")
	}
	if cmd.IsSet("input-address") {
		cfg.Input.Addresses = cmd.StringSlice("input-address")
	}
	if cmd.IsSet("output-address") {
		cfg.Output.Addresses = cmd.StringSlice("output-address")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.Log.Level)

	return cfg, nil
}

const (
	storeInput  = "input"
	storeOutput = "output"
)

// newStoreClient creates a search client for one store. Bulk writes to the
// output store are sent once; only searches are retried.
func newStoreClient(role string, sc config.StoreConfig) (*search.Client, error) {
	scfg, err := sc.SearchConfig()
	if err != nil {
		return nil, err
	}
	if role == storeOutput {
		scfg.DisableRetry = true
	}
	c, err := search.NewClient(role, scfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s store client: %w", role, err)
	}
	return c, nil
}

// buildRunner creates a runner with the configured collectors registered in
// order.
func buildRunner(cfg *config.Config, input search.Searcher, output search.BulkWriter, logger *slog.Logger) (*runner.Runner, error) {
	r, err := runner.New(runner.Config{
		Input:        input,
		Output:       output,
		Interval:     cfg.Interval,
		RemotePrefix: cfg.RemotePrefix,
		Indices:      cfg.Indices,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	factory := collector.NewDefaultFactory(collector.WithPageSize(cfg.PageSize))
	for _, n := range cfg.Collectors {
		c, err := factory.Create(n)
		if err != nil {
			return nil, err
		}
		r.RegisterCollector(n, c)
	}
	return r, nil
}
