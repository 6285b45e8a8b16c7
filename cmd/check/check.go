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

package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

import (
	"github.com/pkg/errors"

	"github.com/spf13/cobra"
)

import (
	"github.com/arana-db/ddlguard/cmd/cmds"
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/constants"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/runtime/engine"
	"github.com/arana-db/ddlguard/pkg/runtime/route"
	"github.com/arana-db/ddlguard/pkg/runtime/validator"
	"github.com/arana-db/ddlguard/pkg/schema"
	"github.com/arana-db/ddlguard/pkg/trace"
	"github.com/arana-db/ddlguard/pkg/util/log"
	"github.com/arana-db/ddlguard/pkg/util/tableprint"
)

var (
	configPath string
	sql        string
	dsn        string
)

func init() {
	cmd := &cobra.Command{
		Use:     "check",
		Short:   "check a DDL statement against the sharding rule",
		Example: `ddlguard check -c config.yaml --sql "DROP INDEX idx_name ON student"`,
		RunE:    run,
	}
	cmd.PersistentFlags().
		StringVarP(&configPath, constants.ConfigPathKey, "c", "", "configuration file path")
	cmd.PersistentFlags().
		StringVarP(&sql, constants.SQLKey, "s", "", "the statement to check")
	cmd.PersistentFlags().
		StringVar(&dsn, constants.DSNKey, "", "load metadata from MySQL, eg: root:123456@tcp(127.0.0.1:3306)/employees")
	_ = cmd.MarkPersistentFlagRequired(constants.SQLKey)

	cmds.Handle(func(root *cobra.Command) {
		root.AddCommand(cmd)
	})
}

func run(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	if code := Run(cmd.Context(), os.Stdout, configPath, sql, dsn); code != 0 {
		os.Exit(code)
	}
	return nil
}

// Run checks the sql and writes the route result or the rejection into w.
// It returns 1 if the statement is rejected or cannot be checked.
func Run(ctx context.Context, w io.Writer, configPath, sql, dsn string) int {
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := newEngine(ctx, configPath, dsn)
	if err != nil {
		_, _ = fmt.Fprintf(w, "ERROR: %v\n", err)
		return 1
	}

	res, err := e.Check(ctx, sql)
	if err != nil {
		var ve *validator.Error
		if errors.As(err, &ve) {
			_, _ = fmt.Fprintln(w, ve.SQLError().Error())
		} else {
			_, _ = fmt.Fprintf(w, "ERROR: %v\n", err)
		}
		return 1
	}

	tableprint.WriteTable(w, []string{"logical_table", "data_source", "actual_table"}, routeRows(res.Route), false)
	_, _ = fmt.Fprintln(w, "OK")
	return 0
}

func newEngine(ctx context.Context, configPath, dsn string) (*engine.Engine, error) {
	path, err := config.Locate(configPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.Logging != nil {
		log.Init(cfg.Logging)
	}
	if err = trace.Initialize(ctx, cfg.Trace); err != nil {
		log.Warnf("init trace provider failed: %v", err)
	}

	ru, err := cfg.BuildRule()
	if err != nil {
		return nil, err
	}

	var db proto.Database
	if len(dsn) > 0 {
		db, err = loadDatabase(ctx, cfg, dsn)
	} else {
		db, err = cfg.BuildDatabase()
	}
	if err != nil {
		return nil, err
	}

	return engine.New(ru, db, cfg.Props()), nil
}

func loadDatabase(ctx context.Context, cfg *config.Configuration, dsn string) (proto.Database, error) {
	dbType, err := cfg.DatabaseType()
	if err != nil {
		return nil, err
	}

	conn, schemaName, err := schema.Open(dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = conn.Close()
	}()

	name := cfg.Data.Database.Name
	if !strings.EqualFold(name, schemaName) {
		log.Warnf("schema '%s' in dsn differs from database '%s', unqualified indexes will not be found", schemaName, name)
	}

	loader, err := schema.NewLoader(schema.FromDB(conn), dbType,
		schema.WithCacheSize(cfg.Props().GetInt(config.PropMetadataCache, schema.DefaultCacheSize)))
	if err != nil {
		return nil, err
	}
	return loader.LoadDatabase(ctx, name, schemaName)
}

func routeRows(rc *route.Context) [][]string {
	if rc.IsEmpty() {
		return nil
	}
	var rows [][]string
	for _, unit := range rc.Units {
		for _, table := range unit.Tables {
			rows = append(rows, []string{table.Logic, unit.DataSource.Actual, table.Actual})
		}
	}
	return rows
}
