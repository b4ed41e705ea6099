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

// Package leader elects a single active collector across replicas using a
// coordination.k8s.io Lease.
//
//	e, err := leader.New(clientset, leader.Config{
//	    Namespace: "observability",
//	    Identity:  client.Identity(),
//	}, slog.Default())
//	if err != nil {
//	    return err
//	}
//	return e.Run(ctx, func(ctx context.Context) {
//	    _ = sched.Start(ctx)
//	})
//
// The Lease is released on cancellation so a standby replica takes over
// without waiting for it to expire.
package leader
