/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rule

import (
	"fmt"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
)

func buildTopology(dbs, tablesPerDB int) *Topology {
	var topology Topology
	topology.SetRender(func(i int) string {
		return fmt.Sprintf("ds_%d", i)
	}, func(i int) string {
		return fmt.Sprintf("t_order_%d", i)
	})
	for db := 0; db < dbs; db++ {
		tbs := make([]int, 0, tablesPerDB)
		for j := 0; j < tablesPerDB; j++ {
			tbs = append(tbs, db*tablesPerDB+j)
		}
		topology.SetTopology(db, tbs...)
	}
	return &topology
}

func TestRule(t *testing.T) {
	var ru Rule
	ru.SetDataSources("ds_0", "ds_1", "ds_2")
	ru.SetVTable("t_order", NewVTable("t_order", buildTopology(2, 2)))
	ru.SetBroadcastTables("t_dict")

	assert.True(t, ru.Has("T_ORDER"))
	assert.True(t, ru.IsSharded("t_order"))
	assert.False(t, ru.IsSharded("t_dict"))
	assert.True(t, ru.IsBroadcast("T_Dict"))
	assert.False(t, ru.IsBroadcast("t_order"))

	assert.Equal(t, 4, ru.ConfiguredDataNodeCount("t_order"))
	assert.Equal(t, 3, ru.ConfiguredDataNodeCount("t_dict"))
	assert.Equal(t, 1, ru.ConfiguredDataNodeCount("t_user"))

	assert.Equal(t, []string{"t_order"}, ru.VTableNames())
	assert.Equal(t, "t_order", ru.MustVTable("t_order").Name())
	assert.Panics(t, func() {
		ru.MustVTable("t_user")
	})

	ds, ok := ru.DefaultDataSource()
	assert.True(t, ok)
	assert.Equal(t, "ds_0", ds)

	ru.RemoveVTable("t_order")
	assert.False(t, ru.IsSharded("t_order"))
	assert.Equal(t, 1, ru.ConfiguredDataNodeCount("t_order"))
}

func TestRuleWithoutDataSources(t *testing.T) {
	var ru Rule
	ru.SetBroadcastTables("t_dict")
	_, ok := ru.DefaultDataSource()
	assert.False(t, ok)
	assert.Equal(t, 1, ru.ConfiguredDataNodeCount("t_dict"))
}

func TestVTable(t *testing.T) {
	vt := NewVTable("t_order", buildTopology(2, 3))
	assert.Equal(t, 6, vt.DataNodes().Len())
	assert.False(t, vt.AllowFullScan())
	vt.SetAllowFullScan(true)
	assert.True(t, vt.AllowFullScan())
	vt.SetName("t_order_v2")
	assert.Equal(t, "t_order_v2", vt.Name())

	var empty VTable
	assert.True(t, empty.DataNodes().IsEmpty())
}
