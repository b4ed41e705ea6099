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

package leader

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/leaderelection"
	"k8s.io/client-go/tools/leaderelection/resourcelock"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
)

// DefaultLeaseName is the Lease used when none is configured.
const DefaultLeaseName = "asset-discovery"

// Config configures leader election.
type Config struct {
	Namespace string
	LeaseName string
	Identity  string

	LeaseDuration time.Duration
	RenewDeadline time.Duration
	RetryPeriod   time.Duration
}

// Elector runs a callback only while this replica holds the Lease.
type Elector struct {
	client  kubernetes.Interface
	config  Config
	logger  *slog.Logger
	leading atomic.Bool
}

// New creates an elector. Namespace and Identity are required.
func New(client kubernetes.Interface, cfg Config, logger *slog.Logger) (*Elector, error) {
	if client == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "leader election requires a kubernetes client")
	}
	if cfg.Namespace == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "leader election namespace is required")
	}
	if cfg.Identity == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "leader election identity is required")
	}
	if cfg.LeaseName == "" {
		cfg.LeaseName = DefaultLeaseName
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = defaults.LeaseDuration
	}
	if cfg.RenewDeadline <= 0 {
		cfg.RenewDeadline = defaults.LeaseRenewDeadline
	}
	if cfg.RetryPeriod <= 0 {
		cfg.RetryPeriod = defaults.LeaseRetryPeriod
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Elector{
		client: client,
		config: cfg,
		logger: logger.With(slog.String("lease", cfg.Namespace+"/"+cfg.LeaseName), slog.String("identity", cfg.Identity)),
	}, nil
}

// Run blocks campaigning for the Lease. While leading, run is invoked with a
// context that is canceled when leadership ends. Run returns nil when ctx is
// canceled and an UNAVAILABLE error when leadership is lost while ctx is
// still live; callers are expected to exit so a fresh replica can campaign.
func (e *Elector) Run(ctx context.Context, run func(ctx context.Context)) error {
	lock := &resourcelock.LeaseLock{
		LeaseMeta: metav1.ObjectMeta{
			Name:      e.config.LeaseName,
			Namespace: e.config.Namespace,
		},
		Client: e.client.CoordinationV1(),
		LockConfig: resourcelock.ResourceLockConfig{
			Identity: e.config.Identity,
		},
	}

	var lost atomic.Bool
	le, err := leaderelection.NewLeaderElector(leaderelection.LeaderElectionConfig{
		Lock:            lock,
		LeaseDuration:   e.config.LeaseDuration,
		RenewDeadline:   e.config.RenewDeadline,
		RetryPeriod:     e.config.RetryPeriod,
		ReleaseOnCancel: true,
		Name:            e.config.LeaseName,
		Callbacks: leaderelection.LeaderCallbacks{
			OnStartedLeading: func(leadCtx context.Context) {
				e.leading.Store(true)
				leaderGauge.Set(1)
				leaderTransitions.Inc()
				e.logger.Info("acquired leadership")
				run(leadCtx)
			},
			OnStoppedLeading: func() {
				wasLeading := e.leading.Swap(false)
				leaderGauge.Set(0)
				if ctx.Err() == nil && wasLeading {
					lost.Store(true)
					e.logger.Warn("lost leadership")
					return
				}
				e.logger.Info("stopped campaigning")
			},
			OnNewLeader: func(identity string) {
				if identity != e.config.Identity {
					e.logger.Info("observed leader", slog.String("leader", identity))
				}
			},
		},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid leader election configuration", err)
	}

	e.logger.Info("campaigning for leadership",
		slog.Duration("leaseDuration", e.config.LeaseDuration),
		slog.Duration("renewDeadline", e.config.RenewDeadline),
		slog.Duration("retryPeriod", e.config.RetryPeriod))

	le.Run(ctx)

	if lost.Load() {
		return errors.NewWithContext(errors.ErrCodeUnavailable, "lost leadership",
			map[string]any{"lease": e.config.LeaseName, "identity": e.config.Identity})
	}
	return nil
}

// IsLeader reports whether this replica currently holds the Lease.
func (e *Elector) IsLeader() bool {
	return e.leading.Load()
}

// Identity returns this replica's holder identity.
func (e *Elector) Identity() string {
	return e.config.Identity
}

// Holder returns the identity recorded on the Lease, or "" when the Lease
// does not exist or is released.
func (e *Elector) Holder(ctx context.Context) (string, error) {
	lease, err := e.client.CoordinationV1().Leases(e.config.Namespace).Get(ctx, e.config.LeaseName, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get lease %s/%s: %w", e.config.Namespace, e.config.LeaseName, err)
	}
	return ptr.Deref(lease.Spec.HolderIdentity, ""), nil
}
