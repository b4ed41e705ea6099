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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/NVIDIA/asset-discovery/pkg/defaults"
)

// Interface is an alias for kubernetes.Interface so tests can pass fake clientsets.
type Interface = kubernetes.Interface

const (
	// EnvKubeconfig names the kubeconfig file used out of cluster.
	EnvKubeconfig = "KUBECONFIG"

	// EnvPodNamespace and EnvPodName are set through the downward API.
	EnvPodNamespace = "POD_NAMESPACE"
	EnvPodName      = "POD_NAME"

	// DefaultNamespace is used when no namespace can be discovered.
	DefaultNamespace = "default"

	userAgent = "assetd"
)

// serviceAccountNamespaceFile is a variable so tests can point it elsewhere.
var serviceAccountNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a process-wide Kubernetes client, creating it on
// first call with automatic configuration discovery.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	return cachedClient, cachedConfig, clientErr
}

// BuildKubeClient creates a Kubernetes client, bypassing the shared cache.
//
// With an empty kubeconfig the configuration is discovered from, in order:
//  1. the KUBECONFIG environment variable
//  2. ~/.kube/config, if it exists
//  3. the in-cluster service account
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := restConfig(resolveKubeconfig(kubeconfig))
	if err != nil {
		return nil, nil, err
	}

	config.UserAgent = userAgent
	config.QPS = defaults.KubeClientQPS
	config.Burst = defaults.KubeClientBurst

	client, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return client, config, nil
}

// GetKubeClientWithConfig returns a client for an explicit kubeconfig path,
// or the shared client when the path is empty.
func GetKubeClientWithConfig(kubeconfig string) (Interface, *rest.Config, error) {
	if kubeconfig == "" {
		return GetKubeClient()
	}
	return BuildKubeClient(kubeconfig)
}

func resolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv(EnvKubeconfig); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

func restConfig(kubeconfig string) (*rest.Config, error) {
	// InClusterConfig directly avoids the "Neither --kubeconfig nor --master" warning
	if kubeconfig == "" {
		config, err := rest.InClusterConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
		return config, nil
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to build kube config from %s: %w", kubeconfig, err)
	}
	return config, nil
}

// CurrentNamespace returns the namespace the process runs in: POD_NAMESPACE,
// then the service account namespace file, then "default".
func CurrentNamespace() string {
	if ns := strings.TrimSpace(os.Getenv(EnvPodNamespace)); ns != "" {
		return ns
	}
	if data, err := os.ReadFile(serviceAccountNamespaceFile); err == nil {
		if ns := strings.TrimSpace(string(data)); ns != "" {
			return ns
		}
	}
	return DefaultNamespace
}

// Identity returns a name for this process that is unique among replicas:
// POD_NAME, then the hostname, then a random id.
func Identity() string {
	if name := strings.TrimSpace(os.Getenv(EnvPodName)); name != "" {
		return name
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return uuid.NewString()
}
