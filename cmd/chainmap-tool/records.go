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
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

type record struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

type recordFile struct {
	Records []record `toml:"record"`
}

// readRecords decodes a file of [[record]] tables, in file order.
func readRecords(ctx context.Context, path string) ([]record, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, moerr.NewFileNotFound(ctx, path)
		}
		return nil, moerr.ConvertGoError(ctx, err)
	}
	var f recordFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, moerr.NewInvalidInput(ctx, "decode %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logutil.Warnf("ignored unknown fields in %s: %v", path, undecoded)
	}
	for i, r := range f.Records {
		if r.Key == "" && r.Value == "" {
			return nil, moerr.NewInvalidInput(ctx, "%s: record %d is empty", path, i)
		}
	}
	return f.Records, nil
}

func insertRecords(m *chainmap.ChainedMap[string, string], records []record) {
	for _, r := range records {
		m.Insert(r.Key, r.Value)
	}
}
