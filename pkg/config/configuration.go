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
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

const (
	DuplicatesAppend  = "append"
	DuplicatesReplace = "replace"
)

// MapConfig of the chained map
type MapConfig struct {
	//bucket count of the table. default: 10
	Buckets int `toml:"buckets"`

	//hash function name: string, xxhash or wyhash. default: string
	Hasher string `toml:"hasher"`

	//what insert does with a key already present: append or replace. default: append
	Duplicates string `toml:"duplicates"`
}

// Config is the configuration of chainmap-tool.
type Config struct {
	Map MapConfig         `toml:"map"`
	Log logutil.LogConfig `toml:"log"`
}

// Parse reads and decodes the toml file at path. Defaults are filled in
// and the result is validated.
func Parse(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, moerr.NewNoConfig(ctx, path)
		}
		return nil, moerr.ConvertGoError(ctx, err)
	}

	cfg := &Config{}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, moerr.NewBadConfig(ctx, "decode %s: %v", path, err)
	}
	// Adjust treats 0 as unset
	if md.IsDefined("map", "buckets") && cfg.Map.Buckets == 0 {
		return nil, moerr.NewInvalidCapacity(ctx, 0)
	}
	cfg.Adjust()
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Adjust()
	return cfg
}

func (c *Config) Adjust() {
	if c.Map.Buckets == 0 {
		c.Map.Buckets = chainmap.DefaultBucketCount
	}
	if c.Map.Hasher == "" {
		c.Map.Hasher = chainmap.HasherString
	}
	if c.Map.Duplicates == "" {
		c.Map.Duplicates = DuplicatesAppend
	}
	c.Log.Adjust()
}

func (c *Config) Validate(ctx context.Context) error {
	if c.Map.Buckets <= 0 {
		return moerr.NewInvalidCapacity(ctx, c.Map.Buckets)
	}
	if _, err := chainmap.HasherByName(c.Map.Hasher); err != nil {
		return moerr.NewBadConfig(ctx, "map.hasher %q", c.Map.Hasher)
	}
	if _, err := c.Map.Policy(ctx); err != nil {
		return err
	}
	return c.Log.Validate(ctx)
}

// Policy converts the duplicates setting.
func (m MapConfig) Policy(ctx context.Context) (chainmap.DuplicatePolicy, error) {
	switch m.Duplicates {
	case DuplicatesAppend, "":
		return chainmap.AppendDuplicates, nil
	case DuplicatesReplace:
		return chainmap.ReplaceDuplicates, nil
	default:
		return 0, moerr.NewBadConfig(ctx, "map.duplicates %q", m.Duplicates)
	}
}

// NewStringMap builds the map described by m.
func NewStringMap[V any](ctx context.Context, m MapConfig) (*chainmap.ChainedMap[string, V], error) {
	hasher, err := chainmap.HasherByName(m.Hasher)
	if err != nil {
		return nil, moerr.NewBadConfig(ctx, "map.hasher %q", m.Hasher)
	}
	policy, err := m.Policy(ctx)
	if err != nil {
		return nil, err
	}
	return chainmap.New[string, V](m.Buckets, hasher, chainmap.WithDuplicatePolicy(policy))
}
