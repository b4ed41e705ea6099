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
	"os"
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/collector"
	"github.com/NVIDIA/asset-discovery/pkg/defaults"
	"github.com/NVIDIA/asset-discovery/pkg/indices"
	"github.com/NVIDIA/asset-discovery/pkg/k8s/leader"
	"github.com/NVIDIA/asset-discovery/pkg/search"
)

// Config is the daemon configuration.
type Config struct {
	// Interval is the period between cycles and the width of the window each
	// cycle searches.
	Interval time.Duration `json:"interval" yaml:"interval"`

	// RemotePrefix is a cross-cluster search alias applied to every input
	// index pattern.
	RemotePrefix string `json:"remotePrefix,omitempty" yaml:"remotePrefix,omitempty"`

	// PageSize caps the collapsed documents each collector reads per cycle.
	PageSize int `json:"pageSize" yaml:"pageSize"`

	// Collectors lists collector names in registration order.
	Collectors []string `json:"collectors" yaml:"collectors"`

	// Indices overrides the input index patterns. Empty entries use defaults.
	Indices indices.Set `json:"indices,omitempty" yaml:"indices,omitempty"`

	Input  StoreConfig `json:"input" yaml:"input"`
	Output StoreConfig `json:"output" yaml:"output"`

	Server         ServerConfig         `json:"server" yaml:"server"`
	LeaderElection LeaderElectionConfig `json:"leaderElection" yaml:"leaderElection"`
	Log            LogConfig            `json:"log" yaml:"log"`
}

// StoreConfig is the connection to a telemetry or inventory store.
type StoreConfig struct {
	Addresses          []string      `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	CloudID            string        `json:"cloudID,omitempty" yaml:"cloudID,omitempty"`
	Username           string        `json:"username,omitempty" yaml:"username,omitempty"`
	Password           string        `json:"password,omitempty" yaml:"password,omitempty"`
	APIKey             string        `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
	CACertFile         string        `json:"caCertFile,omitempty" yaml:"caCertFile,omitempty"`
	InsecureSkipVerify bool          `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify,omitempty"`
	Timeout            time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	MaxRetries         int           `json:"maxRetries,omitempty" yaml:"maxRetries,omitempty"`
}

// ServerConfig configures the operations HTTP server.
type ServerConfig struct {
	Address        string  `json:"address" yaml:"address"`
	Port           int     `json:"port" yaml:"port"`
	RateLimit      float64 `json:"rateLimit" yaml:"rateLimit"`
	RateLimitBurst int     `json:"rateLimitBurst" yaml:"rateLimitBurst"`
}

// LeaderElectionConfig restricts collection to one replica.
type LeaderElectionConfig struct {
	Enabled   bool   `json:"enabled" yaml:"enabled"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	LeaseName string `json:"leaseName,omitempty" yaml:"leaseName,omitempty"`
	Identity  string `json:"identity,omitempty" yaml:"identity,omitempty"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// Default returns the configuration used when no file is given. Store
// addresses have no default.
func Default() *Config {
	return &Config{
		Interval:   defaults.CollectionInterval,
		PageSize:   defaults.CollectorPageSize,
		Collectors: collector.SupportedCollectors(),
		Server: ServerConfig{
			Port:           8080,
			RateLimit:      10,
			RateLimitBurst: 20,
		},
		LeaderElection: LeaderElectionConfig{
			LeaseName: leader.DefaultLeaseName,
		},
		Log: LogConfig{Level: "info"},
	}
}

// SearchConfig converts the store settings into a search client config,
// reading the CA bundle if one is configured.
func (s StoreConfig) SearchConfig() (search.Config, error) {
	cfg := search.Config{
		Addresses:          s.Addresses,
		CloudID:            s.CloudID,
		Username:           s.Username,
		Password:           s.Password,
		APIKey:             s.APIKey,
		InsecureSkipVerify: s.InsecureSkipVerify,
		Timeout:            s.Timeout,
		MaxRetries:         s.MaxRetries,
	}
	if s.CACertFile != "" {
		pem, err := os.ReadFile(s.CACertFile)
		if err != nil {
			return search.Config{}, fmt.Errorf("failed to read CA bundle %q: %w", s.CACertFile, err)
		}
		cfg.CACert = pem
	}
	return cfg, nil
}

// Redacted returns a copy with credentials masked, safe for logging.
func (c *Config) Redacted() *Config {
	out := *c
	out.Collectors = append([]string(nil), c.Collectors...)
	out.Input = c.Input.redacted()
	out.Output = c.Output.redacted()
	return &out
}

const redactedValue = "***"

func (s StoreConfig) redacted() StoreConfig {
	s.Addresses = append([]string(nil), s.Addresses...)
	if s.Password != "" {
		s.Password = redactedValue
	}
	if s.APIKey != "" {
		s.APIKey = redactedValue
	}
	return s
}
