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
	"sort"
)

// Topology describes the physical distribution of a logical table: database index -> table indexes.
type Topology struct {
	dbRender, tbRender func(int) string
	idx                map[int][]int
}

func (to *Topology) Len() (dbLen int, tblLen int) {
	dbLen = len(to.idx)
	for _, v := range to.idx {
		tblLen += len(v)
	}
	return
}

func (to *Topology) SetTopology(db int, tables ...int) {
	if to.idx == nil {
		to.idx = make(map[int][]int)
	}

	if len(tables) < 1 {
		delete(to.idx, db)
		return
	}

	clone := make([]int, len(tables))
	copy(clone, tables)
	sort.Ints(clone)
	to.idx[db] = clone
}

func (to *Topology) SetRender(dbRender, tbRender func(int) string) {
	to.dbRender, to.tbRender = dbRender, tbRender
}

func (to *Topology) Render(dbIdx, tblIdx int) (string, string, bool) {
	if to.tbRender == nil || to.dbRender == nil {
		return "", "", false
	}
	return to.dbRender(dbIdx), to.tbRender(tblIdx), true
}

// Each iterates the pairs of database and table index in ascending order, stops when f returns false.
func (to *Topology) Each(f func(dbIdx, tbIdx int) bool) {
	dbs := make([]int, 0, len(to.idx))
	for k := range to.idx {
		dbs = append(dbs, k)
	}
	sort.Ints(dbs)

	for _, db := range dbs {
		for _, tb := range to.idx[db] {
			if !f(db, tb) {
				return
			}
		}
	}
}

// Exists returns true if the pair of database and table index is a part of the topology.
func (to *Topology) Exists(dbIdx, tbIdx int) bool {
	tbs, ok := to.idx[dbIdx]
	if !ok {
		return false
	}
	i := sort.SearchInts(tbs, tbIdx)
	return i < len(tbs) && tbs[i] == tbIdx
}

// Enumerate renders all the data nodes.
func (to *Topology) Enumerate() DatabaseTables {
	ret := make(DatabaseTables)
	to.Each(func(dbIdx, tbIdx int) bool {
		if db, tb, ok := to.Render(dbIdx, tbIdx); ok {
			ret[db] = append(ret[db], tb)
		}
		return true
	})
	return ret
}

// Smallest returns the first rendered data node.
func (to *Topology) Smallest() (db, tb string, ok bool) {
	to.Each(func(dbIdx, tbIdx int) bool {
		db, tb, ok = to.Render(dbIdx, tbIdx)
		return false
	})
	return
}
