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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/config"
	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

type tool struct {
	ctx        context.Context
	cfg        *config.Config
	configPath string
	buckets    int
	hasher     string
	duplicates string
}

func newRootCommand() *cobra.Command {
	t := &tool{ctx: context.Background()}
	root := &cobra.Command{
		Use:           "chainmap-tool",
		Short:         "Exercise a fixed bucket chained hash map",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return t.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&t.configPath, "config", "c", "", "toml configuration file")
	root.PersistentFlags().IntVarP(&t.buckets, "buckets", "n", chainmap.DefaultBucketCount, "bucket count")
	root.PersistentFlags().StringVar(&t.hasher, "hasher", chainmap.HasherString, "hash function: string, xxhash or wyhash")
	root.PersistentFlags().StringVar(&t.duplicates, "duplicates", config.DuplicatesAppend, "insert of a present key: append or replace")

	root.AddCommand(
		demoCommand(t),
		loadCommand(t),
		keysCommand(t),
		statsCommand(t),
	)
	return root
}

// setup loads the configuration, applies flag overrides and installs the logger.
func (t *tool) setup(cmd *cobra.Command) (err error) {
	cfg := config.Default()
	if t.configPath != "" {
		if cfg, err = config.Parse(t.ctx, t.configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("buckets") {
		cfg.Map.Buckets = t.buckets
	}
	if flags.Changed("hasher") {
		cfg.Map.Hasher = t.hasher
	}
	if flags.Changed("duplicates") {
		cfg.Map.Duplicates = t.duplicates
	}
	if err = cfg.Validate(t.ctx); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = moerr.ConvertPanicError(t.ctx, r)
		}
	}()
	logutil.SetupMOLogger(&cfg.Log)
	t.cfg = cfg
	return nil
}

func (t *tool) newMap() (*chainmap.ChainedMap[string, string], error) {
	m, err := config.NewStringMap[string](t.ctx, t.cfg.Map)
	if err != nil {
		return nil, err
	}
	logutil.Debug("chained map created",
		zap.Int("buckets", m.BucketCount()),
		zap.String("hasher", t.cfg.Map.Hasher),
		zap.Stringer("duplicates", m.Policy()))
	return m, nil
}
