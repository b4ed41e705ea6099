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


package defaults

import "time"

// Discovery cycle defaults.
const (
	// CollectionInterval is the default period between discovery cycles. It is
	// also the width of the sliding window each cycle searches.
	CollectionInterval = 1 * time.Minute

	// CollectorPageSize is the maximum number of collapsed documents a
	// collector reads per cycle. There is no pagination beyond it.
	CollectorPageSize = 1000

	// TriggerTimeout bounds an on-demand cycle started over HTTP.
	TriggerTimeout = 5 * time.Minute
)

// Telemetry and inventory store client defaults.
const (
	// StoreRequestTimeout is the per-request timeout for search and bulk calls.
	StoreRequestTimeout = 30 * time.Second

	// StoreMaxRetries is the transport-level retry count for telemetry
	// searches. The inventory store client is built with retries disabled.
	StoreMaxRetries = 3
)

// Server timeouts for the operations HTTP server.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Covers a full on-demand cycle.
	ServerWriteTimeout = TriggerTimeout + 30*time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for K8s API operations.
const (
	// LeaseDuration is how long a non-leader waits before trying to take the lease.
	LeaseDuration = 15 * time.Second

	// LeaseRenewDeadline is how long the leader retries refreshing the lease.
	LeaseRenewDeadline = 10 * time.Second

	// LeaseRetryPeriod is the interval between lease acquisition attempts.
	LeaseRetryPeriod = 2 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 15 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// Kubernetes client limits.
const (
	// KubeClientQPS is the sustained request rate against the API server.
	KubeClientQPS = 20

	// KubeClientBurst is the request burst against the API server.
	KubeClientBurst = 40
)
