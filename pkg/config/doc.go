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


// Package config loads the asset discovery daemon configuration.
//
// Values are layered, later layers winning: built-in defaults, a YAML file,
// ASSETD_ environment variables, then command line flags applied by pkg/cli.
//
//	interval: 1m
//	pageSize: 1000
//	collectors: [containers, pods, hosts]
//	input:
//	  addresses: [https://telemetry.example.com:9200]
//	  apiKey: ...
//	output:
//	  addresses: [https://inventory.example.com:9200]
//	leaderElection:
//	  enabled: true
//
// Credentials are normally supplied through ASSETD_INPUT_API_KEY and
// friends rather than the file. Use Config.Redacted before logging.
package config
