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

	"github.com/matrixorigin/chainmap/pkg/container/chainmap"
	"github.com/matrixorigin/chainmap/pkg/logutil"
)

type person struct {
	Name  string
	Age   int
	Phone string
}

func (p person) String() string {
	return fmt.Sprintf("%s(%d, %s)", p.Name, p.Age, p.Phone)
}

var samplePeople = []person{
	{"Jones", 34, "555-1234"},
	{"Smith", 41, "555-9876"},
	{"Martin", 29, "555-0000"},
	{"Wilson", 52, "555-4242"},
	{"Taylor", 38, "555-7777"},
}

var (
	demoLookup = "Smith"
	demoDelete = "Wilson"
)

func demoCommand(t *tool) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Insert sample people keyed by surname, then look up and delete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return t.runDemo(cmd.OutOrStdout())
		},
	}
}

func (t *tool) runDemo(w io.Writer) error {
	hasher, err := chainmap.HasherByName(t.cfg.Map.Hasher)
	if err != nil {
		return err
	}
	policy, err := t.cfg.Map.Policy(t.ctx)
	if err != nil {
		return err
	}
	m, err := chainmap.New[string, person](t.cfg.Map.Buckets, hasher, chainmap.WithDuplicatePolicy(policy))
	if err != nil {
		return err
	}

	for _, p := range samplePeople {
		m.Insert(p.Name, p)
		fmt.Fprintf(w, "insert %s -> bucket %d\n", p.Name, m.BucketOf(p.Name))
	}
	logutil.Info("demo records inserted", zap.Int("entries", m.Len()))

	lookup := func(name string) {
		if p, ok := m.Get(name); ok {
			fmt.Fprintf(w, "get %s: %v\n", name, p)
		} else {
			fmt.Fprintf(w, "get %s: not found\n", name)
		}
	}

	lookup(demoLookup)
	if p, ok := m.Delete(demoDelete); ok {
		fmt.Fprintf(w, "delete %s: %v\n", demoDelete, p)
	} else {
		fmt.Fprintf(w, "delete %s: not found\n", demoDelete)
	}
	lookup(demoDelete)
	lookup(demoLookup)

	fmt.Fprintf(w, "entries %d, load factor %.2f\n", m.Len(), m.LoadFactor())
	return chainmap.FormatDump(w, m.Dump())
}
