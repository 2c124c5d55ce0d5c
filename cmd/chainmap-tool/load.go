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
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/chainmap/pkg/common/moerr"
	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

type loadArg struct {
	gets    []string
	deletes []string
	noDump  bool
}

func loadCommand(t *tool) *cobra.Command {
	arg := &loadArg{}
	cmd := &cobra.Command{
		Use:   "load <records.toml>",
		Short: "Insert records from a file and dump the buckets",
		Long:  "Insert the [[record]] tables of a toml file in order, run the requested deletes, then the lookups, and dump every bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := t.loadMap(args[0])
			if err != nil {
				return err
			}
			return t.runLoad(cmd.OutOrStdout(), m, arg)
		},
	}
	cmd.Flags().StringArrayVarP(&arg.gets, "get", "g", nil, "key to look up after loading, repeatable")
	cmd.Flags().StringArrayVarP(&arg.deletes, "delete", "d", nil, "key to delete after loading, repeatable")
	cmd.Flags().BoolVar(&arg.noDump, "no-dump", false, "do not print the buckets")
	return cmd
}

func (t *tool) loadMap(path string) (*chainmap.ChainedMap[string, string], error) {
	records, err := readRecords(t.ctx, path)
	if err != nil {
		return nil, err
	}
	m, err := t.newMap()
	if err != nil {
		return nil, err
	}
	insertRecords(m, records)
	logutil.Info("records loaded",
		zap.String("file", path),
		zap.Int("records", len(records)),
		zap.Int("entries", m.Len()))
	return m, nil
}

func (t *tool) runLoad(w io.Writer, m *chainmap.ChainedMap[string, string], arg *loadArg) error {
	for _, key := range arg.deletes {
		if v, ok := m.Delete(key); ok {
			fmt.Fprintf(w, "delete %s: %s\n", key, v)
		} else {
			t.reportMissing(w, "delete", key)
		}
	}
	for _, key := range arg.gets {
		if v, ok := m.Get(key); ok {
			fmt.Fprintf(w, "get %s: %s\n", key, v)
		} else {
			t.reportMissing(w, "get", key)
		}
	}
	if arg.noDump {
		return nil
	}
	return chainmap.FormatDump(w, m.Dump())
}

func (t *tool) reportMissing(w io.Writer, op, key string) {
	err := moerr.NewKeyNotFound(t.ctx, key)
	logutil.Debug("lookup missed", zap.String("op", op), zap.Error(err))
	fmt.Fprintf(w, "%s %s: %v\n", op, key, err)
}
