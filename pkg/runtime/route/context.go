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

package route

import (
	"strings"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto/rule"
)

// Mapper maps a logical name to an actual name.
type Mapper struct {
	Logic  string
	Actual string
}

// Unit represents the tables routed to one actual data source.
type Unit struct {
	DataSource Mapper
	Tables     []Mapper
}

// Context represents the result of routing a statement.
type Context struct {
	Units []*Unit
}

// Add appends the data nodes of a logical table, logicDB is the logical data source name.
func (c *Context) Add(logicDB, logicTable string, shards rule.DatabaseTables) {
	for _, pair := range shards.Pairs() {
		u := c.unit(pair.Database)
		if u == nil {
			u = &Unit{
				DataSource: Mapper{Logic: logicDB, Actual: pair.Database},
			}
			c.Units = append(c.Units, u)
		}
		u.Tables = append(u.Tables, Mapper{Logic: logicTable, Actual: pair.Table})
	}
}

// IsEmpty returns true if nothing is routed.
func (c *Context) IsEmpty() bool {
	return c == nil || len(c.Units) < 1
}

// DataNodes returns the routed data nodes of the logical table.
func (c *Context) DataNodes(table string) rule.DatabaseTables {
	ret := make(rule.DatabaseTables)
	if c == nil {
		return ret
	}
	for _, u := range c.Units {
		for _, tbl := range u.Tables {
			if !strings.EqualFold(tbl.Logic, table) {
				continue
			}
			if !ret.Contains(u.DataSource.Actual, tbl.Actual) {
				ret[u.DataSource.Actual] = append(ret[u.DataSource.Actual], tbl.Actual)
			}
		}
	}
	return ret
}

// RoutedDataNodeCount returns the amount of distinct actual data nodes routed for the logical table.
func (c *Context) RoutedDataNodeCount(table string) int {
	return c.DataNodes(table).Len()
}

// LogicTables returns the logical tables in routed order.
func (c *Context) LogicTables() []string {
	var ret []string
	if c == nil {
		return ret
	}
	seen := make(map[string]struct{})
	for _, u := range c.Units {
		for _, tbl := range u.Tables {
			k := strings.ToLower(tbl.Logic)
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			ret = append(ret, tbl.Logic)
		}
	}
	return ret
}

func (c *Context) unit(actualDB string) *Unit {
	for _, it := range c.Units {
		if it.DataSource.Actual == actualDB {
			return it
		}
	}
	return nil
}
