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

package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if me, ok := err.(*moerr.Error); ok && me.Detail() != "" {
			fields = append(fields, zap.String("detail", me.Detail()))
		}
		logutil.Error("chainmap-tool failed", fields...)
	}
	_ = logutil.Sync()
	if err != nil {
		os.Exit(1)
	}
}
