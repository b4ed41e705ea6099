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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/asset-discovery/pkg/asset"
	"github.com/NVIDIA/asset-discovery/pkg/config"
	"github.com/NVIDIA/asset-discovery/pkg/header"
	"github.com/NVIDIA/asset-discovery/pkg/indices"
)

func indicesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "indices",
		EnableShellCompletion: true,
		Usage:                 "Print the resolved source and destination indices",
		Description: `Prints the telemetry index patterns collectors search, after defaults and
the remote prefix are applied, and the inventory index each asset kind is
written to.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "remote-prefix",
				Usage: "Cross-cluster search alias prepended to source index patterns",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.Read(ctx, cmd.String("config"))
			if err != nil {
				return err
			}
			if cmd.IsSet("remote-prefix") {
				cfg.RemotePrefix = cmd.String("remote-prefix")
			}
			return writeResult(ctx, format, cmd.String("output"), resolveIndices(cfg))
		},
	}
}

// IndexListing is the resolved index layout of one deployment.
type IndexListing struct {
	header.Header `json:",inline" yaml:",inline"`

	RemotePrefix string            `json:"remotePrefix,omitempty" yaml:"remotePrefix,omitempty"`
	Source       indices.Set       `json:"source" yaml:"source"`
	Destination  map[string]string `json:"destination" yaml:"destination"`
}

func resolveIndices(cfg *config.Config) *IndexListing {
	kinds := []asset.Kind{asset.KindContainer, asset.KindPod, asset.KindHost}
	dest := make(map[string]string, len(kinds))
	for _, k := range kinds {
		dest[k.String()] = asset.IndexName(k)
	}
	l := &IndexListing{
		RemotePrefix: cfg.RemotePrefix,
		Source:       cfg.Indices.WithDefaults().WithRemotePrefix(cfg.RemotePrefix),
		Destination:  dest,
	}
	l.Init(header.KindIndexListing, header.APIVersion, version)
	return l
}

// TableHeader implements serializer.Table.
func (l *IndexListing) TableHeader() []string {
	return []string{"ROLE", "NAME", "INDICES"}
}

// TableRows implements serializer.Table.
func (l *IndexListing) TableRows() [][]string {
	rows := [][]string{
		{"source", "traces", l.Source.Traces},
		{"source", "metrics", l.Source.Metrics},
		{"source", "logs", l.Source.Logs},
	}
	for _, k := range []asset.Kind{asset.KindContainer, asset.KindPod, asset.KindHost} {
		rows = append(rows, []string{"destination", k.String(), l.Destination[k.String()]})
	}
	return rows
}
