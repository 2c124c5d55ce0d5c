// Copyright 2021 Matrix Origin
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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "chainmap.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	path := writeConfig(t, `
[map]
buckets = 16
hasher = "xxhash"
duplicates = "replace"

[log]
level = "debug"
format = "json"
`)
	cfg, err := Parse(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Map.Buckets)
	require.Equal(t, chainmap.HasherXX, cfg.Map.Hasher)
	require.Equal(t, DuplicatesReplace, cfg.Map.Duplicates)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 512, cfg.Log.MaxSize)

	policy, err := cfg.Map.Policy(ctx)
	require.NoError(t, err)
	require.Equal(t, chainmap.ReplaceDuplicates, policy)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(context.Background(), writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, chainmap.DefaultBucketCount, cfg.Map.Buckets)
	require.Equal(t, chainmap.HasherString, cfg.Map.Hasher)
	require.Equal(t, DuplicatesAppend, cfg.Map.Duplicates)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestParseErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		content string
		code    uint16
	}{
		{
			name:    "bad toml",
			content: "[map\nbuckets = 1",
			code:    moerr.ErrBadConfig,
		},
		{
			name:    "negative buckets",
			content: "[map]\nbuckets = -3",
			code:    moerr.ErrInvalidCapacity,
		},
		{
			name:    "unknown hasher",
			content: "[map]\nhasher = \"md5\"",
			code:    moerr.ErrBadConfig,
		},
		{
			name:    "unknown duplicates",
			content: "[map]\nduplicates = \"merge\"",
			code:    moerr.ErrBadConfig,
		},
		{
			name:    "explicit zero buckets",
			content: "[map]\nbuckets = 0",
			code:    moerr.ErrInvalidCapacity,
		},
		{
			name:    "unknown log format",
			content: "[log]\nformat = \"text\"",
			code:    moerr.ErrBadConfig,
		},
		{
			name:    "unknown log level",
			content: "[log]\nlevel = \"verbose\"",
			code:    moerr.ErrBadConfig,
		},
		{
			name:    "unknown stacktrace level",
			content: "[log]\nstacktrace-level = \"always\"",
			code:    moerr.ErrBadConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(ctx, writeConfig(t, tt.content))
			require.Nil(t, cfg)
			require.True(t, moerr.IsMoErrCode(err, tt.code), "got %v", err)
		})
	}

	_, err := Parse(ctx, filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrNoConfig))
}

func TestParseLogSection(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "chainmap.log")
	cfg, err := Parse(context.Background(), writeConfig(t, fmt.Sprintf(`
[log]
level = "warn"
format = "json"
filename = %q
`, logFile)))
	require.NoError(t, err)

	logutil.SetupMOLogger(&cfg.Log)
	defer logutil.SetupMOLogger(&logutil.LogConfig{Level: "info", Format: "console"})

	logutil.Info("below the configured level")
	logutil.Warnf("ignored unknown fields in %s", "records.toml")
	require.NoError(t, logutil.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), `"level":"WARN"`)
	require.Contains(t, string(data), `"msg":"ignored unknown fields in records.toml"`)
	require.NotContains(t, string(data), "below the configured level")
}

func TestNewStringMap(t *testing.T) {
	ctx := context.Background()

	m, err := NewStringMap[int](ctx, MapConfig{Buckets: 3, Hasher: chainmap.HasherWy, Duplicates: DuplicatesReplace})
	require.NoError(t, err)
	require.Equal(t, 3, m.BucketCount())
	require.Equal(t, chainmap.ReplaceDuplicates, m.Policy())
	m.Insert("a", 1)
	m.Insert("a", 2)
	require.Equal(t, 1, m.Len())

	_, err = NewStringMap[int](ctx, MapConfig{Buckets: 0})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidCapacity))

	_, err = NewStringMap[int](ctx, MapConfig{Buckets: 1, Hasher: "crc"})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}
