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

package rule_test

import (
	"sort"
	"strings"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto/rule"
)

func parseDatabaseTablesFromString(s string) rule.DatabaseTables {
	ret := make(rule.DatabaseTables)
	sp := strings.Split(s, ";")
	for _, it := range sp {
		if strings.TrimSpace(it) == "" {
			continue
		}
		sp2 := strings.Split(it, ":")
		db := strings.TrimSpace(sp2[0])
		for _, tb := range strings.Split(sp2[1], ",") {
			ret[db] = append(ret[db], strings.TrimSpace(tb))
		}
	}

	for _, v := range ret {
		sort.Strings(v)
	}

	return ret
}

func TestDatabaseTables_And(t *testing.T) {
	for _, next := range [][3]string{
		{"foo:bar", "foo:bar,quz;bar:a", "foo:bar,bbb"},
		{"", "foo:bar", "bar:foo"},
		{"foo:a,b;bar:c", "foo:a,b;bar:c", "foo:a,b,x;bar:c,y"},
	} {
		var (
			should = parseDatabaseTablesFromString(next[0])
			a      = parseDatabaseTablesFromString(next[1])
			b      = parseDatabaseTablesFromString(next[2])
		)
		res := a.And(b)
		t.Logf("%s AND %s = %s\n", a, b, res)
		assert.Equal(t, should, res)
	}

	some := parseDatabaseTablesFromString("foo:bar")
	assert.Equal(t, some, rule.DatabaseTables(nil).And(some))
	assert.Equal(t, some, some.And(nil))
}

func TestDatabaseTables_Len(t *testing.T) {
	assert.Equal(t, 0, rule.DatabaseTables(nil).Len())
	assert.Equal(t, 3, parseDatabaseTablesFromString("foo:a,b;bar:a").Len())
	assert.Equal(t, 2, rule.DatabaseTables{"foo": {"a", "a", "b"}}.Len())
}

func TestDatabaseTables_IsEmpty(t *testing.T) {
	assert.False(t, rule.DatabaseTables(nil).IsEmpty())
	assert.True(t, rule.DatabaseTables{}.IsEmpty())
	assert.False(t, parseDatabaseTablesFromString("foo:a").IsEmpty())
}

func TestDatabaseTables_Pairs(t *testing.T) {
	dt := rule.DatabaseTables{"ds_1": {"t_1", "t_0", "t_1"}, "ds_0": {"t_0"}}
	assert.Equal(t, []rule.DatabaseTable{
		{Database: "ds_0", Table: "t_0"},
		{Database: "ds_1", Table: "t_0"},
		{Database: "ds_1", Table: "t_1"},
	}, dt.Pairs())
	assert.True(t, dt.Contains("ds_1", "t_1"))
	assert.False(t, dt.Contains("ds_0", "t_1"))

	db, tb := dt.Smallest()
	assert.Equal(t, "ds_0", db)
	assert.Equal(t, "t_0", tb)
}

func TestDatabaseTables_String(t *testing.T) {
	assert.Equal(t, `["*"]`, rule.DatabaseTables(nil).String())
	assert.Equal(t, "[]", rule.DatabaseTables{}.String())
	assert.Equal(t, `["bar.a", "foo.a", "foo.b"]`, parseDatabaseTablesFromString("foo:b,a;bar:a").String())
}
