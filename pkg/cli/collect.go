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
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/runner"
	"github.com/NVIDIA/asset-discovery/pkg/search"
	"github.com/NVIDIA/asset-discovery/pkg/serializer"
)

func collectCmd() *cli.Command {
	flags := append(discoveryFlags(),
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Collect without writing; print the assets that would be created",
		},
		&cli.BoolFlag{
			Name:  "fail-on-error",
			Usage: "Exit non-zero when any collector or write failed",
		},
		outputFlag(),
		formatFlag(),
	)

	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Run a single discovery cycle",
		Description: `Runs every configured collector once over the window [now - interval, now]
and writes the assets to the inventory store.

With --dry-run nothing is written: the assets are serialized to --output
(file, cm://namespace/name, or stdout) in --format instead. Without it the
run report is serialized there. A per-collector summary is printed to stderr.

Examples:

  assetd collect --config assetd.yaml
  assetd collect --dry-run --input-address http://localhost:9200 --format table
  assetd collect --dry-run -o cm://observability/assets`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}

			dryRun := cmd.Bool("dry-run")
			if dryRun {
				err = cfg.ValidateDryRun()
			} else {
				err = cfg.Validate()
			}
			if err != nil {
				return err
			}

			input, err := newStoreClient(storeInput, cfg.Input)
			if err != nil {
				return err
			}

			var (
				output search.BulkWriter
				dry    *serializer.DryRunWriter
			)
			if dryRun {
				dry = serializer.NewDryRunWriter()
				dry.Version = version
				output = dry
			} else {
				output, err = newStoreClient(storeOutput, cfg.Output)
				if err != nil {
					return err
				}
			}

			r, err := buildRunner(cfg, input, output, slog.Default())
			if err != nil {
				return err
			}

			report := r.Run(ctx)

			var result any = report
			if dry != nil {
				result = dry.Dump()
			}
			if err := writeResult(ctx, format, cmd.String("output"), result); err != nil {
				return err
			}

			if err := printSummary(ctx, errWriter(cmd), report); err != nil {
				return err
			}

			if cmd.Bool("fail-on-error") && report.Failed() > 0 {
				return errors.NewWithContext(errors.ErrCodeCollectorFailed, "discovery cycle completed with failures",
					map[string]any{"failed": report.Failed(), "runID": report.RunID})
			}
			return nil
		},
	}
}

// writeResult serializes v to the --output destination.
func writeResult(ctx context.Context, format serializer.Format, output string, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, output)
	if closer, ok := ser.(serializer.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close output", "error", err)
			}
		}()
	}
	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func errWriter(cmd *cli.Command) io.Writer {
	if cmd != nil && cmd.Root().ErrWriter != nil {
		return cmd.Root().ErrWriter
	}
	return os.Stderr
}

// summary renders a run report as one row per collector.
type summary struct {
	report *runner.Report
}

var collectorTitle = cases.Title(language.English)

// TableHeader implements serializer.Table.
func (s summary) TableHeader() []string {
	return []string{"COLLECTOR", "ASSETS", "FAILED ITEMS", "DURATION", "STATUS"}
}

// TableRows implements serializer.Table.
func (s summary) TableRows() [][]string {
	if s.report == nil {
		return nil
	}
	rows := make([][]string, 0, len(s.report.Steps)+1)
	for _, step := range s.report.Steps {
		rows = append(rows, []string{
			collectorTitle.String(step.Name),
			strconv.Itoa(step.Assets),
			strconv.Itoa(step.FailedItems),
			step.Duration.Round(time.Millisecond).String(),
			stepStatus(step),
		})
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(s.report.TotalAssets()),
		"",
		s.report.Duration.Round(time.Millisecond).String(),
		fmt.Sprintf("%d failed", s.report.Failed()),
	})
	return rows
}

func stepStatus(step runner.StepResult) string {
	switch {
	case step.CollectErr != nil:
		return "collect failed"
	case step.WriteErr != nil:
		return "write failed"
	default:
		return "ok"
	}
}

func printSummary(ctx context.Context, w io.Writer, report *runner.Report) error {
	return serializer.NewWriter(serializer.FormatTable, w).Serialize(ctx, summary{report: report})
}
