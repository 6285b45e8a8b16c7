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
	"strings"
)

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DatabaseTable represents the pair of database and table.
type DatabaseTable struct {
	Database, Table string
}

func (dt DatabaseTable) String() string {
	return dt.Database + "." + dt.Table
}

// DatabaseTables represents a bundle of databases and tables.
type DatabaseTables map[string][]string

// Len returns the amount of distinct pairs of database and table.
func (dt DatabaseTables) Len() int {
	var n int
	for _, tbls := range dt {
		seen := make(map[string]struct{}, len(tbls))
		for _, tbl := range tbls {
			if _, ok := seen[tbl]; ok {
				continue
			}
			seen[tbl] = struct{}{}
			n++
		}
	}
	return n
}

// IsEmpty returns true if the current DatabaseTables is empty.
func (dt DatabaseTables) IsEmpty() bool {
	return dt != nil && len(dt) == 0
}

// Contains returns true if the pair of database and table exists.
func (dt DatabaseTables) Contains(db, tbl string) bool {
	return slices.Contains(dt[db], tbl)
}

// Pairs returns all pairs of database and table, sorted.
func (dt DatabaseTables) Pairs() []DatabaseTable {
	ret := make([]DatabaseTable, 0, len(dt))
	for _, db := range dt.sortedKeys() {
		tbls := make([]string, len(dt[db]))
		copy(tbls, dt[db])
		sort.Strings(tbls)
		for i, tbl := range tbls {
			if i > 0 && tbls[i-1] == tbl {
				continue
			}
			ret = append(ret, DatabaseTable{Database: db, Table: tbl})
		}
	}
	return ret
}

// Smallest returns the smallest pair of database and table.
func (dt DatabaseTables) Smallest() (db, tbl string) {
	for k := range dt {
		if db == "" || strings.Compare(k, db) == -1 {
			db = k
		}
	}
	for _, it := range dt[db] {
		if tbl == "" || strings.Compare(it, tbl) == -1 {
			tbl = it
		}
	}
	return
}

// And returns the intersection of two DatabaseTables, nil means no restriction.
func (dt DatabaseTables) And(other DatabaseTables) DatabaseTables {
	if dt == nil {
		return other
	}
	if other == nil {
		return dt
	}

	ret := make(DatabaseTables)
	for db, tbls := range dt {
		for _, tbl := range tbls {
			if other.Contains(db, tbl) && !ret.Contains(db, tbl) {
				ret[db] = append(ret[db], tbl)
			}
		}
	}
	for db := range ret {
		sort.Strings(ret[db])
	}
	return ret
}

func (dt DatabaseTables) String() string {
	if dt == nil {
		return `["*"]`
	}
	if dt.IsEmpty() {
		return "[]"
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i, it := range dt.Pairs() {
		if i > 0 {
			sb.WriteByte(',')
			sb.WriteByte(' ')
		}
		sb.WriteByte('"')
		sb.WriteString(it.String())
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return sb.String()
}

func (dt DatabaseTables) sortedKeys() []string {
	keys := maps.Keys(dt)
	slices.Sort(keys)
	return keys
}
