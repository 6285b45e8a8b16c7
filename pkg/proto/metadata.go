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

//go:generate mockgen -destination=../../testdata/mock_metadata.go -package=testdata . Database,Schema
package proto

import (
	"strings"
)

// Database represents a logical database, it is a read-only snapshot of the catalog.
type Database interface {
	// Name returns the name of the logical database.
	Name() string
	// Type returns the dialect of the database.
	Type() DatabaseType
	// Schema returns the schema with the given name.
	Schema(name Identifier) (Schema, bool)
}

// Schema represents a namespace of tables.
type Schema interface {
	// Name returns the catalog name of the schema.
	Name() string
	// AllTableNames returns the catalog names of all tables, in catalog order.
	AllTableNames() []string
	// Table returns the metadata of a table by its catalog name.
	Table(name string) (*TableMetadata, bool)
}

type TableMetadata struct {
	Name              string
	Columns           map[string]*ColumnMetadata
	Indexes           map[string]*IndexMetadata
	ColumnNames       []string
	PrimaryKeyColumns []string

	dbType     DatabaseType
	indexNames []string
}

func NewTableMetadata(dbType DatabaseType, name string, columnMetadataList []*ColumnMetadata, indexMetadataList []*IndexMetadata) *TableMetadata {
	tma := &TableMetadata{
		Name:              name,
		Columns:           make(map[string]*ColumnMetadata, len(columnMetadataList)),
		Indexes:           make(map[string]*IndexMetadata, len(indexMetadataList)),
		ColumnNames:       make([]string, len(columnMetadataList)),
		PrimaryKeyColumns: make([]string, 0),
		dbType:            dbType,
	}
	for i, columnMetadata := range columnMetadataList {
		columnName := tma.foldCatalog(columnMetadata.Name)
		tma.ColumnNames[i] = columnName
		tma.Columns[columnName] = columnMetadata
		if columnMetadata.PrimaryKey {
			tma.PrimaryKeyColumns = append(tma.PrimaryKeyColumns, columnName)
		}
	}
	for _, indexMetadata := range indexMetadataList {
		indexName := tma.foldCatalog(indexMetadata.Name)
		if _, ok := tma.Indexes[indexName]; !ok {
			tma.indexNames = append(tma.indexNames, indexMetadata.Name)
		}
		tma.Indexes[indexName] = indexMetadata
	}

	return tma
}

// HasIndex returns true if the table contains the index.
func (tma *TableMetadata) HasIndex(name Identifier) bool {
	var key string
	if tma.dbType == nil {
		key = strings.ToLower(name.Value)
	} else {
		key = tma.dbType.Fold(name)
	}
	_, ok := tma.Indexes[key]
	return ok
}

// IndexNames returns the catalog names of indexes, in catalog order.
func (tma *TableMetadata) IndexNames() []string {
	ret := make([]string, len(tma.indexNames))
	copy(ret, tma.indexNames)
	return ret
}

func (tma *TableMetadata) foldCatalog(name string) string {
	if tma.dbType == nil {
		return strings.ToLower(name)
	}
	return tma.dbType.FoldCatalog(name)
}

type ColumnMetadata struct {
	Name          string
	DataType      string
	Ordinal       string
	PrimaryKey    bool
	Generated     bool
	CaseSensitive bool
}

type IndexMetadata struct {
	Name   string
	Unique bool
}

type schema struct {
	dbType     DatabaseType
	name       string
	tableNames []string
	tables     map[string]*TableMetadata
}

// NewSchema creates an immutable Schema, the order of tables is kept as catalog order.
func NewSchema(dbType DatabaseType, name string, tables ...*TableMetadata) Schema {
	s := &schema{
		dbType: dbType,
		name:   name,
		tables: make(map[string]*TableMetadata, len(tables)),
	}
	for _, it := range tables {
		key := dbType.FoldCatalog(it.Name)
		if _, ok := s.tables[key]; !ok {
			s.tableNames = append(s.tableNames, it.Name)
		}
		s.tables[key] = it
	}
	return s
}

func (s *schema) Name() string {
	return s.name
}

func (s *schema) AllTableNames() []string {
	ret := make([]string, len(s.tableNames))
	copy(ret, s.tableNames)
	return ret
}

func (s *schema) Table(name string) (*TableMetadata, bool) {
	t, ok := s.tables[s.dbType.FoldCatalog(name)]
	return t, ok
}

type database struct {
	name    string
	dbType  DatabaseType
	schemas map[string]Schema
}

// NewDatabase creates an immutable Database.
func NewDatabase(name string, dbType DatabaseType, schemas ...Schema) Database {
	db := &database{
		name:    name,
		dbType:  dbType,
		schemas: make(map[string]Schema, len(schemas)),
	}
	for _, it := range schemas {
		db.schemas[dbType.FoldCatalog(it.Name())] = it
	}
	return db
}

func (db *database) Name() string {
	return db.name
}

func (db *database) Type() DatabaseType {
	return db.dbType
}

func (db *database) Schema(name Identifier) (Schema, bool) {
	s, ok := db.schemas[db.dbType.Fold(name)]
	return s, ok
}

// DefaultSchemaName returns the identifier of the default schema of the database.
// The name comes from the catalog, so it is quoted to keep its case.
func DefaultSchemaName(db Database) Identifier {
	dbType := db.Type()
	return Identifier{
		Value: dbType.DefaultSchema(db.Name()),
		Quote: dbType.QuoteCharacter(),
	}
}

// ResolveSchema returns the schema named by owner, or the default schema if owner is nil.
func ResolveSchema(db Database, owner *Identifier) (Schema, bool) {
	if owner != nil {
		return db.Schema(*owner)
	}
	return db.Schema(DefaultSchemaName(db))
}

// FindIndexTable returns the first table, in catalog order, which contains the index.
func FindIndexTable(s Schema, index Identifier) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, name := range s.AllTableNames() {
		if t, ok := s.Table(name); ok && t.HasIndex(index) {
			return name, true
		}
	}
	return "", false
}
