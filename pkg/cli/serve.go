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
	"log/slog"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/NVIDIA/asset-discovery/pkg/config"
	"github.com/NVIDIA/asset-discovery/pkg/k8s/client"
	"github.com/NVIDIA/asset-discovery/pkg/k8s/leader"
	"github.com/NVIDIA/asset-discovery/pkg/scheduler"
	"github.com/NVIDIA/asset-discovery/pkg/server"
)

func serveCmd() *cli.Command {
	flags := append(discoveryFlags(),
		&cli.StringFlag{
			Name:  "address",
			Usage: "Operations server listen address",
		},
		&cli.IntFlag{
			Name:  "port",
			Usage: "Operations server port",
		},
		&cli.BoolFlag{
			Name:  "leader-elect",
			Usage: "Collect only while holding the Lease, for multi-replica deployments",
		},
		&cli.StringFlag{
			Name:  "lease-namespace",
			Usage: "Namespace of the leader election Lease (defaults to the pod namespace)",
		},
		kubeconfigFlag(),
	)

	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run discovery on an interval with an operations HTTP server",
		Description: `Runs a discovery cycle immediately and then every interval. Each cycle
searches telemetry written since now minus the interval, so consecutive
cycles cover time without gaps.

The operations server exposes /health, /ready, /metrics and
POST /v1/collect for on-demand cycles. With --leader-elect only the replica
holding the Lease collects; the others keep serving health and metrics.

Under systemd (Type=notify) readiness, stopping and watchdog keep-alives
are reported through sd_notify.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(ctx, cmd)
			if err != nil {
				return err
			}
			if cmd.IsSet("address") {
				cfg.Server.Address = cmd.String("address")
			}
			if cmd.IsSet("port") {
				cfg.Server.Port = int(cmd.Int("port"))
			}
			if cmd.IsSet("leader-elect") {
				cfg.LeaderElection.Enabled = cmd.Bool("leader-elect")
			}
			if cmd.IsSet("lease-namespace") {
				cfg.LeaderElection.Namespace = cmd.String("lease-namespace")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return serve(ctx, cfg, cmd.String("kubeconfig"))
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, kubeconfig string) error {
	logger := slog.Default()
	logger.Info("starting discovery service",
		"interval", cfg.Interval,
		"collectors", cfg.Collectors,
		"remotePrefix", cfg.RemotePrefix,
		"leaderElection", cfg.LeaderElection.Enabled)

	input, err := newStoreClient(storeInput, cfg.Input)
	if err != nil {
		return err
	}
	output, err := newStoreClient(storeOutput, cfg.Output)
	if err != nil {
		return err
	}

	r, err := buildRunner(cfg, input, output, logger)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(r, cfg.Interval, scheduler.WithLogger(logger))
	if err != nil {
		return err
	}

	var elector *leader.Elector
	if cfg.LeaderElection.Enabled {
		elector, err = newElector(cfg.LeaderElection, kubeconfig, logger)
		if err != nil {
			return err
		}
	}

	srv := server.New(serverOptions(cfg, sched, elector, logger)...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})
	g.Go(func() error {
		if elector == nil {
			return sched.Start(gctx)
		}
		return elector.Run(gctx, func(leadCtx context.Context) {
			if err := sched.Start(leadCtx); err != nil {
				logger.Error("scheduler stopped", "error", err)
			}
		})
	})
	g.Go(func() error {
		watchdog(gctx, logger)
		return nil
	})

	sdNotify(logger, daemon.SdNotifyReady)
	err = g.Wait()
	sdNotify(logger, daemon.SdNotifyStopping)

	if err != nil {
		return err
	}
	logger.Info("discovery service stopped")
	return nil
}

func serverOptions(cfg *config.Config, trigger server.Trigger, elector *leader.Elector, logger *slog.Logger) []server.Option {
	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version
	sc.Address = cfg.Server.Address
	sc.Port = cfg.Server.Port
	sc.RateLimit = rate.Limit(cfg.Server.RateLimit)
	sc.RateLimitBurst = cfg.Server.RateLimitBurst

	opts := []server.Option{
		server.WithConfig(sc),
		server.WithTrigger(trigger),
		server.WithLogger(logger),
	}
	if elector != nil {
		opts = append(opts, server.WithLeader(elector))
	}
	return opts
}

func newElector(cfg config.LeaderElectionConfig, kubeconfig string, logger *slog.Logger) (*leader.Elector, error) {
	k8s, _, err := client.GetKubeClientWithConfig(kubeconfig)
	if err != nil {
		return nil, err
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = client.CurrentNamespace()
	}
	identity := cfg.Identity
	if identity == "" {
		identity = client.Identity()
	}

	return leader.New(k8s, leader.Config{
		Namespace: namespace,
		LeaseName: cfg.LeaseName,
		Identity:  identity,
	}, logger)
}

// sdNotify reports state to systemd. It is a no-op outside systemd.
func sdNotify(logger *slog.Logger, state string) {
	sent, err := daemon.SdNotify(false, state)
	if err != nil {
		logger.Warn("systemd notification failed", "state", state, "error", err)
		return
	}
	if sent {
		logger.Debug("systemd notified", "state", state)
	}
}

// watchdog sends keep-alives at half the systemd watchdog interval until ctx
// is done. It returns immediately when the watchdog is not enabled.
func watchdog(ctx context.Context, logger *slog.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sdNotify(logger, daemon.SdNotifyWatchdog)
		}
	}
}
