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
	"fmt"
	"testing"
)

import (
	"github.com/golang/mock/gomock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

import (
	"github.com/arana-db/ddlguard/pkg/constants/mysql"
	"github.com/arana-db/ddlguard/pkg/dialect"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/proto/rule"
	"github.com/arana-db/ddlguard/pkg/runtime/ast"
	"github.com/arana-db/ddlguard/pkg/runtime/route"
	"github.com/arana-db/ddlguard/pkg/runtime/validator"
	"github.com/arana-db/ddlguard/testdata"
)

func shardedRule(tables map[string]int) *rule.Rule {
	ru := new(rule.Rule)
	ru.SetDataSources("ds_0", "ds_1")
	for name, n := range tables {
		name := name
		var topology rule.Topology
		topology.SetRender(func(i int) string {
			return fmt.Sprintf("ds_%d", i%2)
		}, func(i int) string {
			return fmt.Sprintf("%s_%d", name, i)
		})
		for i := 0; i < n; i++ {
			topology.SetTopology(i, i)
		}
		ru.SetVTable(name, rule.NewVTable(name, &topology))
	}
	return ru
}

func routeOf(table string, nodes int) *route.Context {
	rc := new(route.Context)
	shards := make(rule.DatabaseTables)
	for i := 0; i < nodes; i++ {
		ds := fmt.Sprintf("ds_%d", i%2)
		shards[ds] = append(shards[ds], fmt.Sprintf("%s_%d", table, i))
	}
	rc.Add("sharding_db", table, shards)
	return rc
}

func postgresDatabase() proto.Database {
	pg := dialect.MustGet(dialect.PostgreSQL)
	return proto.NewDatabase("sharding_db", pg,
		proto.NewSchema(pg, "public",
			proto.NewTableMetadata(pg, "t_order", nil, []*proto.IndexMetadata{{Name: "idx_a"}}),
			proto.NewTableMetadata(pg, "t_item", nil, []*proto.IndexMetadata{{Name: "idx_b"}}),
			proto.NewTableMetadata(pg, "t_user", nil, []*proto.IndexMetadata{{Name: "idx_user"}}),
		),
		proto.NewSchema(pg, "sales",
			proto.NewTableMetadata(pg, "t_sales", nil, []*proto.IndexMetadata{{Name: "idx_s"}}),
		),
	)
}

func parse(t *testing.T, sql string, dbType proto.DatabaseType) *validator.StatementContext {
	_, stmt, err := ast.Parse(sql, ast.WithDatabaseType(dbType))
	require.NoError(t, err)
	return &validator.StatementContext{
		Statement:    stmt,
		DatabaseType: dbType,
	}
}

func TestRegistered(t *testing.T) {
	v, err := validator.Get(ast.SQLTypeDropIndex)
	assert.NoError(t, err)
	assert.IsType(t, (*DropIndexValidator)(nil), v)
}

func TestPreValidate_IfExistsShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no expectations: any metadata access fails the test
	db := testdata.NewMockDatabase(ctrl)

	pg := dialect.MustGet(dialect.PostgreSQL)
	sc := parse(t, "DROP INDEX IF EXISTS idx_missing, sales.idx_gone", pg)

	var v DropIndexValidator
	assert.NoError(t, v.PreValidate(context.Background(), new(rule.Rule), sc, nil, db))
}

func TestValidate_S1_QualifiedHappyPath(t *testing.T) {
	mysqlType := dialect.MustGet(dialect.MySQL)
	db := proto.NewDatabase("sharding_db", mysqlType,
		proto.NewSchema(mysqlType, "sharding_db",
			proto.NewTableMetadata(mysqlType, "t_order", nil, []*proto.IndexMetadata{{Name: "idx_a"}}),
		),
	)
	ru := shardedRule(map[string]int{"t_order": 4})
	sc := parse(t, "DROP INDEX idx_a ON t_order", mysqlType)

	var v DropIndexValidator
	assert.NoError(t, v.PreValidate(context.Background(), ru, sc, nil, db))
	assert.NoError(t, v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_order", 4)))
}

func TestPreValidate_S2_MissingIndex(t *testing.T) {
	db := postgresDatabase()
	sc := parse(t, "DROP INDEX idx_a, idx_missing, idx_other", db.Type())

	var v DropIndexValidator
	err := v.PreValidate(context.Background(), new(rule.Rule), sc, nil, db)
	require.Error(t, err)

	assert.ErrorIs(t, err, validator.ErrIndexNotFound)
	assert.NotErrorIs(t, err, validator.ErrInconsistentRouteFanout)
	assert.Equal(t, validator.KindIndexNotFound, validator.KindOf(err))
	assert.Equal(t, "Index 'idx_missing' does not exist.", err.Error())

	var verr *validator.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"idx_missing"}, verr.Indexes)
	assert.Equal(t, mysql.ERCantDropFieldOrKey, verr.SQLError().Number())
	assert.Equal(t, mysql.SSClientError, verr.SQLError().SQLState())
}

func TestPreValidate_OriginalSpelling(t *testing.T) {
	db := postgresDatabase()

	var v DropIndexValidator

	// unquoted folds to lower case
	assert.NoError(t, v.PreValidate(context.Background(), nil, parse(t, "DROP INDEX IDX_A", db.Type()), nil, db))

	// quoted is exact, the message keeps the spelling
	err := v.PreValidate(context.Background(), nil, parse(t, `DROP INDEX "IDX_A"`, db.Type()), nil, db)
	assert.Equal(t, "Index 'IDX_A' does not exist.", err.Error())
}

func TestValidate_S3_MissingIndexPermissive(t *testing.T) {
	db := postgresDatabase()
	ru := shardedRule(map[string]int{"t_order": 4})
	sc := parse(t, "DROP INDEX IF EXISTS idx_missing", db.Type())

	var v DropIndexValidator
	assert.NoError(t, v.PreValidate(context.Background(), ru, sc, nil, db))
	assert.NoError(t, v.PostValidate(context.Background(), ru, sc, nil, db, nil, new(route.Context)))
}

func TestPostValidate_S4_InconsistentFanout(t *testing.T) {
	mysqlType := dialect.MustGet(dialect.MySQL)
	db := proto.NewDatabase("sharding_db", mysqlType,
		proto.NewSchema(mysqlType, "sharding_db",
			proto.NewTableMetadata(mysqlType, "t_order", nil, []*proto.IndexMetadata{{Name: "idx_a"}}),
		),
	)
	ru := shardedRule(map[string]int{"t_order": 4})
	sc := parse(t, "DROP INDEX idx_a ON t_order", mysqlType)

	var v DropIndexValidator
	require.NoError(t, v.PreValidate(context.Background(), ru, sc, nil, db))

	err := v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_order", 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, validator.ErrInconsistentRouteFanout)
	assert.Contains(t, err.Error(), "[idx_a]")
	assert.Equal(t, "DROP INDEX ... statement can not route correctly for indexes [idx_a].", err.Error())

	var verr *validator.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, mysql.ERUnknownError, verr.SQLError().Number())
	assert.Equal(t, mysql.SSUnknownSQLState, verr.SQLError().SQLState())
}

func TestPreValidate_S5_OwnerOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := dialect.MustGet(dialect.PostgreSQL)

	sales := testdata.NewMockSchema(ctrl)
	sales.EXPECT().AllTableNames().Return([]string{"t_sales"}).AnyTimes()
	sales.EXPECT().Table("t_sales").
		Return(proto.NewTableMetadata(pg, "t_sales", nil, []*proto.IndexMetadata{{Name: "idx_a"}}), true).
		AnyTimes()

	db := testdata.NewMockDatabase(ctrl)
	db.EXPECT().Schema(proto.NewIdentifier("sales")).Return(sales, true).Times(1)

	var v DropIndexValidator
	assert.NoError(t, v.PreValidate(context.Background(), nil, parse(t, "DROP INDEX sales.idx_a", pg), nil, db))
}

func TestPreValidate_DefaultSchemaFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := dialect.MustGet(dialect.PostgreSQL)

	public := testdata.NewMockSchema(ctrl)
	public.EXPECT().AllTableNames().Return([]string{"t_order"}).AnyTimes()
	public.EXPECT().Table("t_order").
		Return(proto.NewTableMetadata(pg, "t_order", nil, nil), true).
		AnyTimes()

	db := testdata.NewMockDatabase(ctrl)
	db.EXPECT().Name().Return("sharding_db").AnyTimes()
	db.EXPECT().Type().Return(pg).AnyTimes()
	db.EXPECT().Schema(proto.Identifier{Value: "public", Quote: proto.QuoteDouble}).Return(public, true).Times(1)

	var v DropIndexValidator
	err := v.PreValidate(context.Background(), nil, parse(t, "DROP INDEX idx_a", pg), nil, db)
	assert.ErrorIs(t, err, validator.ErrIndexNotFound)
}

func TestPreValidate_UnknownSchema(t *testing.T) {
	db := postgresDatabase()

	var v DropIndexValidator
	err := v.PreValidate(context.Background(), nil, parse(t, "DROP INDEX archive.idx_a", db.Type()), nil, db)
	assert.ErrorIs(t, err, validator.ErrIndexNotFound)
	assert.Equal(t, "Index 'idx_a' does not exist.", err.Error())
}

func TestPostValidate_S6_MultiIndex(t *testing.T) {
	db := postgresDatabase()
	ru := shardedRule(map[string]int{"t_order": 4, "t_item": 2})

	rc := routeOf("t_order", 3)
	for _, u := range routeOf("t_item", 2).Units {
		rc.Units = append(rc.Units, u)
	}

	sc := parse(t, "DROP INDEX idx_a, idx_b", db.Type())

	var v DropIndexValidator
	require.NoError(t, v.PreValidate(context.Background(), ru, sc, nil, db))

	err := v.PostValidate(context.Background(), ru, sc, nil, db, nil, rc)
	assert.ErrorIs(t, err, validator.ErrInconsistentRouteFanout)
	assert.Equal(t, "DROP INDEX ... statement can not route correctly for indexes [idx_a, idx_b].", err.Error())

	// the offender is the second one, the listing is still the whole statement
	sc = parse(t, "DROP INDEX idx_b, idx_a", db.Type())
	err = v.PostValidate(context.Background(), ru, sc, nil, db, nil, rc)
	assert.Equal(t, "DROP INDEX ... statement can not route correctly for indexes [idx_b, idx_a].", err.Error())
}

func TestPostValidate_FanoutConsistency(t *testing.T) {
	db := postgresDatabase()
	ru := shardedRule(map[string]int{"t_order": 4})
	sc := parse(t, "DROP INDEX idx_a", db.Type())

	var v DropIndexValidator
	for routed := 0; routed <= 6; routed++ {
		err := v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_order", routed))
		if routed == 4 {
			assert.NoError(t, err, "routed=%d", routed)
		} else {
			assert.ErrorIs(t, err, validator.ErrInconsistentRouteFanout, "routed=%d", routed)
		}
	}
}

func TestPostValidate_NonShardedTable(t *testing.T) {
	db := postgresDatabase()
	ru := shardedRule(map[string]int{"t_order": 4})

	var v DropIndexValidator
	for _, sql := range []string{
		"DROP INDEX idx_user",
		"DROP INDEX idx_user ON t_user",
	} {
		sc := parse(t, sql, db.Type())
		for routed := 0; routed <= 3; routed++ {
			assert.NoError(t, v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_user", routed)))
		}
	}
}

func TestPostValidate_Broadcast(t *testing.T) {
	db := postgresDatabase()
	ru := new(rule.Rule)
	ru.SetDataSources("ds_0", "ds_1", "ds_2")
	ru.SetBroadcastTables("t_user")
	sc := parse(t, "DROP INDEX idx_user", db.Type())

	var v DropIndexValidator
	assert.NoError(t, v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_user", 3)))
	assert.ErrorIs(t,
		v.PostValidate(context.Background(), ru, sc, nil, db, nil, routeOf("t_user", 1)),
		validator.ErrInconsistentRouteFanout,
	)
}

func TestValidate_Purity(t *testing.T) {
	db := postgresDatabase()
	ru := shardedRule(map[string]int{"t_order": 4})
	rc := routeOf("t_order", 2)
	sc := parse(t, "DROP INDEX idx_a", db.Type())

	public, _ := db.Schema(proto.NewIdentifier("public"))
	tablesBefore := public.AllTableNames()
	order, _ := public.Table("t_order")
	indexesBefore := order.IndexNames()
	nodesBefore := ru.ConfiguredDataNodeCount("t_order")
	routedBefore := rc.DataNodes("t_order").String()

	var v DropIndexValidator
	first := v.PostValidate(context.Background(), ru, sc, nil, db, nil, rc)
	for i := 0; i < 3; i++ {
		assert.NoError(t, v.PreValidate(context.Background(), ru, sc, nil, db))
		assert.Equal(t, first, v.PostValidate(context.Background(), ru, sc, nil, db, nil, rc))
	}

	assert.Equal(t, tablesBefore, public.AllTableNames())
	assert.Equal(t, indexesBefore, order.IndexNames())
	assert.Equal(t, nodesBefore, ru.ConfiguredDataNodeCount("t_order"))
	assert.Equal(t, routedBefore, rc.DataNodes("t_order").String())
}

func TestValidate_BadStatementContext(t *testing.T) {
	db := postgresDatabase()

	var v DropIndexValidator
	assert.Error(t, v.PreValidate(context.Background(), nil, nil, nil, db))
	assert.Error(t, v.PostValidate(context.Background(), nil, &validator.StatementContext{}, nil, db, nil, nil))
}
