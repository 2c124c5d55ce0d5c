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
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

type person struct {
	name string
	age  int
	city string
}

func TestChainingScenario(t *testing.T) {
	convey.Convey("a ten bucket table keyed by surname", t, func() {
		m, err := NewStringMap[person](DefaultBucketCount)
		convey.So(err, convey.ShouldBeNil)

		people := []person{
			{"Jones", 34, "Leeds"},
			{"Smith", 41, "York"},
			{"Martin", 29, "Bath"},
			{"Wilson", 52, "Hull"},
		}
		for _, p := range people {
			m.Insert(p.name, p)
		}

		convey.So(m.Len(), convey.ShouldEqual, 4)
		convey.So(m.BucketOf("Smith"), convey.ShouldEqual, 7)
		convey.So(m.BucketOf("Martin"), convey.ShouldEqual, 7)
		convey.So(m.BucketOf("Jones"), convey.ShouldEqual, 1)
		convey.So(m.BucketOf("Wilson"), convey.ShouldEqual, 0)

		convey.Convey("colliding keys are both reachable", func() {
			p, ok := m.Get("Smith")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.city, convey.ShouldEqual, "York")

			p, ok = m.Get("Martin")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.age, convey.ShouldEqual, 29)
		})

		convey.Convey("deleting the sole entry of a bucket leaves the others alone", func() {
			p, ok := m.Delete("Wilson")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.city, convey.ShouldEqual, "Hull")

			_, ok = m.Get("Wilson")
			convey.So(ok, convey.ShouldBeFalse)

			p, ok = m.Get("Smith")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.age, convey.ShouldEqual, 41)
			_, ok = m.Get("Martin")
			convey.So(ok, convey.ShouldBeTrue)
			_, ok = m.Get("Jones")
			convey.So(ok, convey.ShouldBeTrue)

			convey.So(m.Len(), convey.ShouldEqual, 3)
			convey.So(m.Dump()[0].Entries, convey.ShouldBeEmpty)
		})

		convey.Convey("deleting the head of a chain keeps the rest of it", func() {
			_, ok := m.Delete("Smith")
			convey.So(ok, convey.ShouldBeTrue)

			entries := m.Dump()[7].Entries
			convey.So(len(entries), convey.ShouldEqual, 1)
			convey.So(entries[0].Key, convey.ShouldEqual, "Martin")
		})

		convey.Convey("a second Jones is shadowed by the first", func() {
			m.Insert("Jones", person{"Jones", 8, "Derby"})
			convey.So(m.Count("Jones"), convey.ShouldEqual, 2)

			p, _ := m.Get("Jones")
			convey.So(p.city, convey.ShouldEqual, "Leeds")

			_, _ = m.Delete("Jones")
			p, ok := m.Get("Jones")
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.city, convey.ShouldEqual, "Derby")
		})
	})
}
