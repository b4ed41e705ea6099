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

package search

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeBulkBody renders a bulk body as newline-delimited JSON, one line per
// element, terminated by a newline.
func EncodeBulkBody(body []any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for i, line := range body {
		// Encode appends the newline.
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("failed to encode bulk line %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
