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

package collector

import (
	"fmt"
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/errors"
)

// Registered collector names, as used in configuration.
const (
	NameContainers = "containers"
	NamePods       = "pods"
	NameHosts      = "hosts"
)

// SupportedCollectors returns the collector names the default factory knows,
// in their default registration order.
func SupportedCollectors() []string {
	return []string{NameContainers, NamePods, NameHosts}
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateContainerCollector() Collector
	CreatePodCollector() Collector
	CreateHostCollector() Collector
	Create(name string) (Collector, error)
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	PageSize int
	Now      func() time.Time
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithPageSize sets the per-cycle result cap of every collector.
func WithPageSize(size int) Option {
	return func(f *DefaultFactory) {
		f.PageSize = size
	}
}

// WithClock sets the clock used to stamp assets.
func WithClock(now func() time.Time) Option {
	return func(f *DefaultFactory) {
		f.Now = now
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		PageSize: defaults.CollectorPageSize,
		Now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateContainerCollector creates a container collector.
func (f *DefaultFactory) CreateContainerCollector() Collector {
	return &ContainerCollector{PageSize: f.PageSize, Now: f.Now}
}

// CreatePodCollector creates a pod collector.
func (f *DefaultFactory) CreatePodCollector() Collector {
	return &PodCollector{PageSize: f.PageSize, Now: f.Now}
}

// CreateHostCollector creates a host collector.
func (f *DefaultFactory) CreateHostCollector() Collector {
	return &HostCollector{PageSize: f.PageSize, Now: f.Now}
}

// Create resolves a configured collector name.
func (f *DefaultFactory) Create(name string) (Collector, error) {
	switch name {
	case NameContainers:
		return f.CreateContainerCollector(), nil
	case NamePods:
		return f.CreatePodCollector(), nil
	case NameHosts:
		return f.CreateHostCollector(), nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("unknown collector %q", name),
			map[string]any{"supported": SupportedCollectors()})
	}
}
