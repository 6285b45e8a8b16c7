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

//go:build integration

package test

import (
	"context"
	"os"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/runtime/engine"
	"github.com/arana-db/ddlguard/pkg/runtime/validator"
	"github.com/arana-db/ddlguard/pkg/schema"
	"github.com/arana-db/ddlguard/pkg/util/log"
	"github.com/arana-db/ddlguard/testdata"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	tester := MySQLContainerTester{
		Username:   "root",
		Password:   "123456",
		Database:   "employees",
		ScriptPath: "fixtures/mysql",
	}
	container, err := tester.SetupMySQLContainer(ctx)
	if err != nil {
		log.Error("Failed to setup MySQL container")
		panic(err)
	}
	dsn = tester.DSN(container)

	code := m.Run()
	tester.CloseContainer(ctx, container)
	os.Exit(code)
}

func TestLoader_Integration(t *testing.T) {
	db, name, err := schema.Open(dsn)
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	cfg, err := config.Load(testdata.Path("fixtures/config.yaml"))
	require.NoError(t, err)
	dbType, err := cfg.DatabaseType()
	require.NoError(t, err)

	loader, err := schema.NewLoader(schema.FromDB(db), dbType)
	require.NoError(t, err)

	snapshot, err := loader.LoadDatabase(context.Background(), name)
	require.NoError(t, err)

	s, ok := proto.ResolveSchema(snapshot, nil)
	require.True(t, ok)
	table, ok := proto.FindIndexTable(s, proto.NewIdentifier("uk_uid"))
	assert.True(t, ok)
	assert.Equal(t, "student", table)

	ru, err := cfg.BuildRule()
	require.NoError(t, err)
	e := engine.New(ru, snapshot, cfg.Props())

	_, err = e.Check(context.Background(), "DROP INDEX idx_name ON student")
	assert.NoError(t, err)

	_, err = e.Check(context.Background(), "DROP INDEX idx_absent ON student")
	assert.Equal(t, validator.KindIndexNotFound, validator.KindOf(err))
}
