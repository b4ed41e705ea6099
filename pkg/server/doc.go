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


// Package server provides the operations HTTP server for the asset discovery
// daemon.
//
// # Endpoints
//
//	GET  /health           liveness, always 200
//	GET  /ready            readiness, 503 until the listener is up and during shutdown
//	GET  /metrics          Prometheus metrics
//	POST /v1/collect       run one discovery cycle and return its report
//	GET  /v1/collect/last  report of the most recent cycle
//	GET  /                 name, version, readiness and routes
//
// Concurrent POST /v1/collect requests share one cycle. With leader election
// enabled only the lease holder accepts them; followers answer 503 with
// retryable set.
//
// # Middleware
//
// API routes pass through, outermost first: Prometheus metrics, request id
// (X-Request-Id, generated when absent or not a UUID), panic recovery, a
// token bucket rate limiter and request logging. System endpoints skip the
// chain.
//
// # Errors
//
// Failures are returned as ErrorResponse with the structured error code of
// pkg/errors mapped to an HTTP status by HTTPStatusFromCode.
//
// # Usage
//
//	srv := server.New(
//	    server.WithConfig(cfg),
//	    server.WithTrigger(sched),
//	    server.WithLeader(elector),
//	)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
package server
