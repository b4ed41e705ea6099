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


// Package k8s provides Kubernetes integration for assetd.
//
// # Sub-packages
//
// client: Singleton Kubernetes client with automatic authentication
//
//	clientset, config, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//
// leader: Lease-based leader election so that only one replica of a
// multi-replica deployment runs discovery cycles
//
//	elector, err := leader.New(clientset, leader.Config{
//	    Namespace: client.CurrentNamespace(),
//	    LeaseName: leader.DefaultLeaseName,
//	    Identity:  client.Identity(),
//	}, slog.Default())
//	if err != nil {
//	    return err
//	}
//	err = elector.Run(ctx, func(ctx context.Context) {
//	    _ = scheduler.Start(ctx)
//	})
//
// # Authentication
//
// The client tries, in order, an explicit kubeconfig path, the KUBECONFIG
// environment variable, ~/.kube/config, and the in-cluster service account.
//
// # RBAC
//
// Leader election needs get, create and update on coordination.k8s.io
// leases in the lease namespace. Writing dumps to ConfigMaps needs get,
// create and update on configmaps in the target namespace.
package k8s
