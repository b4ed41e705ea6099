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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/asset-discovery/pkg/errors"
	"github.com/NVIDIA/asset-discovery/pkg/serializer"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ASSETD_"

// Load reads the configuration with Read and validates it.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg, err := Read(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads the YAML (or JSON) file at path over the defaults and applies
// ASSETD_ environment overrides without validating. An empty path skips the
// file. Unknown keys in the file are rejected.
func Read(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	slog.Debug("configuration read", "path", path, "config", cfg.Redacted())
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	// YAML accepts JSON documents and decodes durations such as "1m".
	reader, err := serializer.NewFileReader(serializer.FormatYAML, path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "failed to open config file", err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			slog.Warn("failed to close config file", "error", closeErr)
		}
	}()

	if err := reader.Strict().Deserialize(cfg); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config file", err,
			map[string]any{"path": path})
	}
	return nil
}

// ApplyEnv overrides cfg from environment variables resolved by lookup.
//
//	ASSETD_INTERVAL, ASSETD_REMOTE_PREFIX, ASSETD_PAGE_SIZE, ASSETD_COLLECTORS,
//	ASSETD_{INPUT,OUTPUT}_{ADDRESSES,CLOUD_ID,USERNAME,PASSWORD,API_KEY,CA_CERT_FILE},
//	ASSETD_SERVER_PORT, ASSETD_LEADER_ELECTION, ASSETD_LEADER_NAMESPACE, ASSETD_LOG_LEVEL
//
// List values are comma separated.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	env := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(v), true
	}

	if v, ok := env("INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return envError("INTERVAL", v, err)
		}
		cfg.Interval = d
	}
	if v, ok := env("REMOTE_PREFIX"); ok {
		cfg.RemotePrefix = v
	}
	if v, ok := env("PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("PAGE_SIZE", v, err)
		}
		cfg.PageSize = n
	}
	if v, ok := env("COLLECTORS"); ok {
		cfg.Collectors = splitList(v)
	}

	applyStoreEnv(&cfg.Input, "INPUT_", env)
	applyStoreEnv(&cfg.Output, "OUTPUT_", env)

	if v, ok := env("SERVER_PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("SERVER_PORT", v, err)
		}
		cfg.Server.Port = n
	}
	if v, ok := env("LEADER_ELECTION"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("LEADER_ELECTION", v, err)
		}
		cfg.LeaderElection.Enabled = b
	}
	if v, ok := env("LEADER_NAMESPACE"); ok {
		cfg.LeaderElection.Namespace = v
	}
	if v, ok := env("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	return nil
}

func applyStoreEnv(s *StoreConfig, prefix string, env func(string) (string, bool)) {
	if v, ok := env(prefix + "ADDRESSES"); ok {
		s.Addresses = splitList(v)
	}
	if v, ok := env(prefix + "CLOUD_ID"); ok {
		s.CloudID = v
	}
	if v, ok := env(prefix + "USERNAME"); ok {
		s.Username = v
	}
	if v, ok := env(prefix + "PASSWORD"); ok {
		s.Password = v
	}
	if v, ok := env(prefix + "API_KEY"); ok {
		s.APIKey = v
	}
	if v, ok := env(prefix + "CA_CERT_FILE"); ok {
		s.CACertFile = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envError(name, value string, err error) error {
	return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
		fmt.Sprintf("invalid %s%s", EnvPrefix, name), err,
		map[string]any{"value": value})
}
