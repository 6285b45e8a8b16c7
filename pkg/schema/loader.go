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

package schema

import (
	"context"
	"database/sql"
	"strings"
)

import (
	"github.com/go-sql-driver/mysql"

	lru "github.com/hashicorp/golang-lru"

	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/util/log"
)

const (
	columnMetadataSQL = "SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, COLUMN_KEY FROM information_schema.columns WHERE TABLE_SCHEMA=? ORDER BY TABLE_NAME, ORDINAL_POSITION"
	indexMetadataSQL  = "SELECT TABLE_NAME, INDEX_NAME, NON_UNIQUE FROM information_schema.statistics WHERE TABLE_SCHEMA=? ORDER BY TABLE_NAME, INDEX_NAME, SEQ_IN_INDEX"
)

const DefaultCacheSize = 16

// Rows is the cursor returned by a Querier, *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}

// Querier runs a read-only query.
type Querier interface {
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
}

type sqlQuerier struct {
	db *sql.DB
}

func (q sqlQuerier) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FromDB wraps a *sql.DB as Querier.
func FromDB(db *sql.DB) Querier {
	return sqlQuerier{db: db}
}

// Open opens a MySQL connection pool, the database name in dsn is returned as the schema.
func Open(dsn string) (*sql.DB, string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, "", errors.Wrap(err, "invalid mysql dsn")
	}
	if len(cfg.DBName) < 1 {
		return nil, "", errors.Errorf("no database specified in dsn")
	}
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, "", errors.WithStack(err)
	}
	return db, cfg.DBName, nil
}

type LoaderOption func(*Loader)

// WithCacheSize sets the max amount of cached schemas.
func WithCacheSize(size int) LoaderOption {
	return func(l *Loader) {
		l.cacheSize = size
	}
}

// Loader loads schema snapshots from information_schema. Loaded schemas are cached until
// they are invalidated or evicted.
type Loader struct {
	querier   Querier
	dbType    proto.DatabaseType
	cacheSize int
	cache     *lru.Cache
}

func NewLoader(querier Querier, dbType proto.DatabaseType, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{
		querier:   querier,
		dbType:    dbType,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(l)
	}

	cache, err := lru.New(l.cacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	l.cache = cache
	return l, nil
}

// Load returns the snapshot of a schema.
func (l *Loader) Load(ctx context.Context, schema string) (proto.Schema, error) {
	key := l.dbType.FoldCatalog(schema)
	if v, ok := l.cache.Get(key); ok {
		return v.(proto.Schema), nil
	}

	tables, err := l.loadTables(ctx, schema)
	if err != nil {
		return nil, err
	}

	s := proto.NewSchema(l.dbType, schema, tables...)
	l.cache.Add(key, s)
	log.Debugf("load metadata of schema %s: %d tables", schema, len(tables))
	return s, nil
}

// Invalidate drops the cached snapshot of a schema.
func (l *Loader) Invalidate(schema string) {
	l.cache.Remove(l.dbType.FoldCatalog(schema))
}

// LoadDatabase builds a database snapshot from the given schemas.
func (l *Loader) LoadDatabase(ctx context.Context, name string, schemas ...string) (proto.Database, error) {
	if len(schemas) == 0 {
		schemas = []string{l.dbType.DefaultSchema(name)}
	}
	loaded := make([]proto.Schema, 0, len(schemas))
	for _, it := range schemas {
		s, err := l.Load(ctx, it)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load metadata of schema '%s'", it)
		}
		loaded = append(loaded, s)
	}
	return proto.NewDatabase(name, l.dbType, loaded...), nil
}

func (l *Loader) loadTables(ctx context.Context, schema string) ([]*proto.TableMetadata, error) {
	tableNames, columns, err := l.loadColumnMetadata(ctx, schema)
	if err != nil {
		return nil, err
	}
	indexes, err := l.loadIndexMetadata(ctx, schema)
	if err != nil {
		return nil, err
	}

	tables := make([]*proto.TableMetadata, 0, len(tableNames))
	for _, name := range tableNames {
		tables = append(tables, proto.NewTableMetadata(l.dbType, name, columns[name], indexes[name]))
	}
	return tables, nil
}

func (l *Loader) loadColumnMetadata(ctx context.Context, schema string) ([]string, map[string][]*proto.ColumnMetadata, error) {
	rows, err := l.querier.Query(ctx, columnMetadataSQL, schema)
	if err != nil {
		log.Errorf("load column metadata of %s failed: %v", schema, err)
		return nil, nil, errors.WithStack(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var (
		tableNames []string
		result     = make(map[string][]*proto.ColumnMetadata)
	)
	for rows.Next() {
		var tableName, columnName, dataType, columnKey string
		if err = rows.Scan(&tableName, &columnName, &dataType, &columnKey); err != nil {
			return nil, nil, errors.WithStack(err)
		}
		if _, ok := result[tableName]; !ok {
			tableNames = append(tableNames, tableName)
		}
		result[tableName] = append(result[tableName], &proto.ColumnMetadata{
			Name:       columnName,
			DataType:   dataType,
			PrimaryKey: strings.EqualFold("PRI", columnKey),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return tableNames, result, nil
}

func (l *Loader) loadIndexMetadata(ctx context.Context, schema string) (map[string][]*proto.IndexMetadata, error) {
	rows, err := l.querier.Query(ctx, indexMetadataSQL, schema)
	if err != nil {
		log.Errorf("load index metadata of %s failed: %v", schema, err)
		return nil, errors.WithStack(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string][]*proto.IndexMetadata)
	for rows.Next() {
		var (
			tableName, indexName string
			nonUnique            int
		)
		if err = rows.Scan(&tableName, &indexName, &nonUnique); err != nil {
			return nil, errors.WithStack(err)
		}
		// a composite index has one row per column
		if list := result[tableName]; len(list) > 0 && list[len(list)-1].Name == indexName {
			continue
		}
		result[tableName] = append(result[tableName], &proto.IndexMetadata{
			Name:   indexName,
			Unique: nonUnique == 0,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return result, nil
}
