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
	"context"
	"strings"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/proto/hint"
	"github.com/arana-db/ddlguard/pkg/proto/rule"
	"github.com/arana-db/ddlguard/pkg/runtime/ast"
)

var ErrNoDataSource = errors.New("route: no data source available")

// Router computes the data nodes which a DROP INDEX statement will be executed on.
type Router struct {
	rule *rule.Rule
	db   proto.Database
}

func NewRouter(ru *rule.Rule, db proto.Database) *Router {
	return &Router{
		rule: ru,
		db:   db,
	}
}

// Route routes the statement. Every logical table behind the statement is broadcast to all of
// its data nodes, which may be narrowed by a ROUTE or DIRECT hint.
func (r *Router) Route(_ context.Context, stmt ast.Statement, hints []*hint.Hint) (*Context, error) {
	dropIndex, ok := stmt.(*ast.DropIndexStatement)
	if !ok {
		return nil, errors.Errorf("route: unsupported statement type %s", stmt.Mode())
	}

	if err := hint.Validate(hints); err != nil {
		return nil, errors.WithStack(err)
	}

	rc := new(Context)
	for _, table := range r.logicTables(dropIndex) {
		shards, err := r.computeShards(table, hints)
		if err != nil {
			return nil, err
		}
		rc.Add(r.db.Name(), table, shards)
	}
	return rc, nil
}

func (r *Router) logicTables(stmt *ast.DropIndexStatement) []string {
	if table, ok := stmt.SimpleTable(); ok {
		return []string{table.Suffix().Value}
	}

	var (
		ret  []string
		seen = make(map[string]struct{})
	)
	for _, it := range stmt.Indexes {
		schema, ok := proto.ResolveSchema(r.db, it.Owner)
		if !ok {
			continue
		}
		table, ok := proto.FindIndexTable(schema, it.Name)
		if !ok {
			continue
		}
		k := strings.ToLower(table)
		if _, ok = seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		ret = append(ret, table)
	}
	return ret
}

func (r *Router) computeShards(table string, hints []*hint.Hint) (rule.DatabaseTables, error) {
	var shards rule.DatabaseTables
	switch {
	case r.rule.IsSharded(table):
		shards = r.rule.MustVTable(table).DataNodes()
	case r.rule.IsBroadcast(table):
		shards = make(rule.DatabaseTables)
		for _, ds := range r.rule.DataSources() {
			shards[ds] = []string{table}
		}
	default:
		ds, ok := r.rule.DefaultDataSource()
		if !ok {
			return nil, errors.Wrapf(ErrNoDataSource, "cannot route table '%s'", table)
		}
		shards = rule.DatabaseTables{ds: []string{table}}
	}

	if h, ok := hint.Find(hint.TypeRoute, hints); ok {
		shards = shards.And(routeHintTables(h))
	}

	if hint.Contains(hint.TypeDirect, hints) && !shards.IsEmpty() {
		db, tbl := shards.Smallest()
		shards = rule.DatabaseTables{db: []string{tbl}}
	}

	return shards, nil
}

func routeHintTables(h *hint.Hint) rule.DatabaseTables {
	ret := make(rule.DatabaseTables)
	for _, it := range h.Inputs {
		tb := strings.SplitN(it.V, ".", 2)
		ret[tb[0]] = append(ret[tb[0]], tb[1])
	}
	return ret
}
