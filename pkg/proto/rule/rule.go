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
	"sort"
	"strings"
	"sync"
)

// VTable represents a virtual logical table, which is distributed over a set of physical
// databases and tables described by its topology.
type VTable struct {
	name          string
	topology      *Topology
	allowFullScan bool
}

// NewVTable creates a VTable.
func NewVTable(name string, topology *Topology) *VTable {
	return &VTable{
		name:     name,
		topology: topology,
	}
}

func (vt *VTable) Name() string {
	return vt.name
}

func (vt *VTable) SetName(name string) {
	vt.name = name
}

func (vt *VTable) Topology() *Topology {
	return vt.topology
}

func (vt *VTable) SetTopology(topology *Topology) {
	vt.topology = topology
}

func (vt *VTable) AllowFullScan() bool {
	return vt.allowFullScan
}

func (vt *VTable) SetAllowFullScan(allow bool) {
	vt.allowFullScan = allow
}

// DataNodes returns all configured data nodes of the table.
func (vt *VTable) DataNodes() DatabaseTables {
	if vt.topology == nil {
		return make(DatabaseTables)
	}
	return vt.topology.Enumerate()
}

// Rule defines the sharding rule of a logical database.
// Lookups of table names are case-insensitive.
type Rule struct {
	mu          sync.RWMutex
	vtabs       map[string]*VTable  // table name -> *VTable
	broadcasts  map[string]struct{} // broadcast table names
	dataSources []string
}

func (ru *Rule) Has(table string) bool {
	ru.mu.RLock()
	_, ok := ru.vtabs[normalize(table)]
	ru.mu.RUnlock()
	return ok
}

// IsSharded returns true if the table is a sharded logical table.
func (ru *Rule) IsSharded(table string) bool {
	return ru.Has(table)
}

// IsBroadcast returns true if the table is copied to every data source.
func (ru *Rule) IsBroadcast(table string) bool {
	ru.mu.RLock()
	_, ok := ru.broadcasts[normalize(table)]
	ru.mu.RUnlock()
	return ok
}

// ConfiguredDataNodeCount returns the amount of data nodes which back the logical table:
// the topology size of a sharded table, the amount of data sources of a broadcast table,
// and 1 for any other table.
func (ru *Rule) ConfiguredDataNodeCount(table string) int {
	if vt, ok := ru.VTable(table); ok {
		return vt.DataNodes().Len()
	}
	if ru.IsBroadcast(table) {
		if n := len(ru.DataSources()); n > 0 {
			return n
		}
	}
	return 1
}

func (ru *Rule) RemoveVTable(table string) {
	ru.mu.Lock()
	delete(ru.vtabs, normalize(table))
	ru.mu.Unlock()
}

func (ru *Rule) SetVTable(table string, vt *VTable) {
	ru.mu.Lock()
	if ru.vtabs == nil {
		ru.vtabs = make(map[string]*VTable)
	}
	ru.vtabs[normalize(table)] = vt
	ru.mu.Unlock()
}

func (ru *Rule) VTable(name string) (*VTable, bool) {
	ru.mu.RLock()
	vt, ok := ru.vtabs[normalize(name)]
	ru.mu.RUnlock()
	return vt, ok
}

func (ru *Rule) MustVTable(name string) *VTable {
	v, ok := ru.VTable(name)
	if !ok {
		panic(fmt.Sprintf("no such VTable %s!", name))
	}
	return v
}

// VTableNames returns the names of all sharded tables, sorted.
func (ru *Rule) VTableNames() []string {
	ru.mu.RLock()
	defer ru.mu.RUnlock()
	ret := make([]string, 0, len(ru.vtabs))
	for _, vt := range ru.vtabs {
		ret = append(ret, vt.Name())
	}
	sort.Strings(ret)
	return ret
}

func (ru *Rule) SetBroadcastTables(tables ...string) {
	ru.mu.Lock()
	if ru.broadcasts == nil {
		ru.broadcasts = make(map[string]struct{}, len(tables))
	}
	for _, it := range tables {
		ru.broadcasts[normalize(it)] = struct{}{}
	}
	ru.mu.Unlock()
}

// SetDataSources sets the data sources, the first one is the default data source.
func (ru *Rule) SetDataSources(names ...string) {
	ru.mu.Lock()
	ru.dataSources = append(ru.dataSources[:0], names...)
	ru.mu.Unlock()
}

func (ru *Rule) DataSources() []string {
	ru.mu.RLock()
	defer ru.mu.RUnlock()
	ret := make([]string, len(ru.dataSources))
	copy(ret, ru.dataSources)
	return ret
}

// DefaultDataSource returns the data source which holds non-sharded tables.
func (ru *Rule) DefaultDataSource() (string, bool) {
	ru.mu.RLock()
	defer ru.mu.RUnlock()
	if len(ru.dataSources) < 1 {
		return "", false
	}
	return ru.dataSources[0], true
}

func normalize(table string) string {
	return strings.ToLower(table)
}
