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

package ddl

import (
	"context"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/runtime/ast"
	"github.com/arana-db/ddlguard/pkg/runtime/validator"
	"github.com/arana-db/ddlguard/pkg/util/log"
)

var _ validator.StatementValidator = (*DropIndexValidator)(nil)

func init() {
	validator.Register(ast.SQLTypeDropIndex, &DropIndexValidator{})
}

// DropIndexValidator validates DROP INDEX on sharded tables. It holds no state.
type DropIndexValidator struct{}

// PreValidate checks every index exists unless IF EXISTS is given.
func (d *DropIndexValidator) PreValidate(_ context.Context, _ validator.ShardingRule, sc *validator.StatementContext, _ []proto.Value, db proto.Database) error {
	stmt, err := dropIndexOf(sc)
	if err != nil {
		return err
	}

	if stmt.ContainsExistClause() {
		return nil
	}

	for _, it := range stmt.Indexes {
		schema, _ := proto.ResolveSchema(db, it.Owner)
		if _, ok := proto.FindIndexTable(schema, it.Name); !ok {
			log.Debugf("reject %s: index %s not found in schema %s", stmt.Mode(), it.Name, schemaName(db, it.Owner))
			return validator.NewIndexNotFoundError(it.Name.String())
		}
	}
	return nil
}

// PostValidate checks the route result covers every data node of the tables which own the indexes.
func (d *DropIndexValidator) PostValidate(_ context.Context, rule validator.ShardingRule, sc *validator.StatementContext, _ []proto.Value, db proto.Database, _ *config.Props, route validator.RouteContext) error {
	stmt, err := dropIndexOf(sc)
	if err != nil {
		return err
	}

	if table, ok := stmt.SimpleTable(); ok {
		return checkRouteFanout(stmt, table.Suffix().Value, rule, route)
	}

	for _, it := range stmt.Indexes {
		schema, _ := proto.ResolveSchema(db, it.Owner)
		table, ok := proto.FindIndexTable(schema, it.Name)
		if !ok {
			// missing index passed IF EXISTS or disappeared after PreValidate
			continue
		}
		if err = checkRouteFanout(stmt, table, rule, route); err != nil {
			return err
		}
	}
	return nil
}

func checkRouteFanout(stmt *ast.DropIndexStatement, table string, rule validator.ShardingRule, route validator.RouteContext) error {
	configured := rule.ConfiguredDataNodeCount(table)
	if !rule.IsSharded(table) && configured <= 1 {
		return nil
	}

	if routed := route.RoutedDataNodeCount(table); routed != configured {
		log.Debugf("reject %s: table %s is routed to %d data nodes, expect %d", stmt.Mode(), table, routed, configured)
		return validator.NewInconsistentRouteFanoutError(stmt.IndexNames())
	}
	return nil
}

func dropIndexOf(sc *validator.StatementContext) (*ast.DropIndexStatement, error) {
	if sc == nil {
		return nil, errors.New("validator: nil statement context")
	}
	stmt, ok := sc.Statement.(*ast.DropIndexStatement)
	if !ok {
		return nil, errors.Errorf("validator: incorrect statement type: expect=%T, actual=%T", (*ast.DropIndexStatement)(nil), sc.Statement)
	}
	return stmt, nil
}

func schemaName(db proto.Database, owner *proto.Identifier) string {
	if owner != nil {
		return owner.String()
	}
	return proto.DefaultSchemaName(db).String()
}
