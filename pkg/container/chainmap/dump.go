// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package chainmap

import (
	"fmt"
	"io"
	"strings"
)

// FormatDump writes one line per bucket, e.g. "bucket[7]: [Smith=42, Martin=17]".
func FormatDump[K comparable, V any](w io.Writer, dump []BucketDump[K, V]) error {
	var sb strings.Builder
	for _, b := range dump {
		sb.Reset()
		fmt.Fprintf(&sb, "bucket[%d]: [", b.Index)
		for i, e := range b.Entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%v=%v", e.Key, e.Value)
		}
		sb.WriteString("]\n")
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}
