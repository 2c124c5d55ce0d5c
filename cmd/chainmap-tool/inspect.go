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
	"strings"

	"github.com/RoaringBitmap/roaring"
	hll "github.com/axiomhq/hyperloglog"
	"github.com/google/btree"
	"github.com/spf13/cobra"

	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
)

func keysCommand(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <records.toml>",
		Short: "List the distinct keys in sorted order with their entry counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := t.loadMap(args[0])
			if err != nil {
				return err
			}
			return printKeys(cmd.OutOrStdout(), m)
		},
	}
}

func statsCommand(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <records.toml>",
		Short: "Show chain lengths, bucket occupancy and shadowed duplicates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := t.loadMap(args[0])
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), m)
		},
	}
}

type keyItem string

func (k keyItem) Less(than btree.Item) bool {
	return k < than.(keyItem)
}

func printKeys(w io.Writer, m *chainmap.ChainedMap[string, string]) error {
	tree := btree.New(8)
	m.Range(func(key, _ string) bool {
		tree.ReplaceOrInsert(keyItem(key))
		return true
	})

	var err error
	tree.Ascend(func(i btree.Item) bool {
		key := string(i.(keyItem))
		_, err = fmt.Fprintf(w, "%s\t%d\n", key, m.Count(key))
		return err == nil
	})
	return err
}

func printStats(w io.Writer, m *chainmap.ChainedMap[string, string]) error {
	occupied := roaring.New()
	sketch := hll.New()
	for _, b := range m.Dump() {
		if len(b.Entries) > 0 {
			occupied.Add(uint32(b.Index))
		}
		for _, e := range b.Entries {
			sketch.Insert([]byte(e.Key))
		}
	}

	s := m.Stats()
	distinct := sketch.Estimate()
	shadowed := 0
	if uint64(s.Entries) > distinct {
		shadowed = s.Entries - int(distinct)
	}

	indexes := make([]string, 0, occupied.GetCardinality())
	for _, i := range occupied.ToArray() {
		indexes = append(indexes, fmt.Sprint(i))
	}

	_, err := fmt.Fprintf(w,
		"buckets: %d\nentries: %d\nload factor: %.2f\nlongest chain: %d\noccupied buckets: %d [%s]\napprox distinct keys: %d\napprox shadowed entries: %d\n",
		s.Buckets, s.Entries, s.LoadFactor, s.MaxChain,
		occupied.GetCardinality(), strings.Join(indexes, " "),
		distinct, shadowed)
	return err
}
