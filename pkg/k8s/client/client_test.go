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

package client

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: abc
`

func TestBuildKubeClient_PathResolution(t *testing.T) {
	tests := []struct {
		name          string
		kubeconfigArg string
		kubeconfigEnv string
		errorContains string
	}{
		{
			name:          "explicit invalid path",
			kubeconfigArg: "/nonexistent/path/to/kubeconfig",
			errorContains: "failed to build kube config",
		},
		{
			name:          "env var with invalid path",
			kubeconfigEnv: "/nonexistent/env/kubeconfig",
			errorContains: "failed to build kube config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKubeconfig, tt.kubeconfigEnv)

			_, _, err := BuildKubeClient(tt.kubeconfigArg)
			if err == nil {
				t.Fatal("BuildKubeClient() expected error")
			}
			if !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("BuildKubeClient() error = %v, want error containing %q", err, tt.errorContains)
			}
		})
	}
}

func TestBuildKubeClient_ValidKubeconfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	if err := os.WriteFile(path, []byte(testKubeconfig), 0o600); err != nil {
		t.Fatalf("failed to write kubeconfig: %v", err)
	}

	client, config, err := BuildKubeClient(path)
	if err != nil {
		t.Fatalf("BuildKubeClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if config.Host != "https://127.0.0.1:6443" {
		t.Errorf("unexpected host %q", config.Host)
	}
	if config.UserAgent != userAgent {
		t.Errorf("expected user agent %q, got %q", userAgent, config.UserAgent)
	}
	if config.QPS <= 0 || config.Burst <= 0 {
		t.Errorf("expected client limits to be set, got qps=%v burst=%d", config.QPS, config.Burst)
	}
}

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv(EnvKubeconfig, "/from/env")

	if got := resolveKubeconfig("/explicit"); got != "/explicit" {
		t.Errorf("explicit path should win, got %q", got)
	}
	if got := resolveKubeconfig(""); got != "/from/env" {
		t.Errorf("env path should be used, got %q", got)
	}
}

func TestCurrentNamespace(t *testing.T) {
	orig := serviceAccountNamespaceFile
	defer func() { serviceAccountNamespaceFile = orig }()

	nsFile := filepath.Join(t.TempDir(), "namespace")
	if err := os.WriteFile(nsFile, []byte("observability\n"), 0o600); err != nil {
		t.Fatalf("failed to write namespace file: %v", err)
	}

	t.Run("env wins", func(t *testing.T) {
		t.Setenv(EnvPodNamespace, "from-env")
		serviceAccountNamespaceFile = nsFile
		if got := CurrentNamespace(); got != "from-env" {
			t.Errorf("expected from-env, got %q", got)
		}
	})

	t.Run("service account file", func(t *testing.T) {
		t.Setenv(EnvPodNamespace, "")
		serviceAccountNamespaceFile = nsFile
		if got := CurrentNamespace(); got != "observability" {
			t.Errorf("expected observability, got %q", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvPodNamespace, "")
		serviceAccountNamespaceFile = filepath.Join(t.TempDir(), "missing")
		if got := CurrentNamespace(); got != DefaultNamespace {
			t.Errorf("expected %q, got %q", DefaultNamespace, got)
		}
	})
}

func TestIdentity(t *testing.T) {
	t.Setenv(EnvPodName, "assetd-7d9f")
	if got := Identity(); got != "assetd-7d9f" {
		t.Errorf("expected pod name, got %q", got)
	}

	t.Setenv(EnvPodName, "")
	if got := Identity(); got == "" {
		t.Error("expected non-empty identity")
	}
}

func TestGetKubeClient_Singleton(t *testing.T) {
	client1, config1, err1 := GetKubeClient()
	client2, config2, err2 := GetKubeClient()

	// nolint:errorlint // pointer equality is the point
	if err1 != err2 {
		t.Errorf("GetKubeClient() should return same error instance: first=%v, second=%v", err1, err2)
	}
	if client1 != client2 {
		t.Error("GetKubeClient() should return the same client instance")
	}
	if config1 != config2 {
		t.Error("GetKubeClient() should return the same config instance")
	}
}
