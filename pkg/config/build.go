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

package config

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/dialect"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/proto/rule"
)

// DatabaseType returns the dialect of the logical database.
func (c *Configuration) DatabaseType() (proto.DatabaseType, error) {
	return dialect.Get(c.Data.Database.Dialect)
}

// Props returns the props.
func (c *Configuration) Props() *Props {
	return NewProps(c.Data.Props)
}

// BuildRule builds the sharding rule.
func (c *Configuration) BuildRule() (*rule.Rule, error) {
	ru := new(rule.Rule)
	ru.SetDataSources(c.Data.DataSources...)

	sr := c.Data.ShardingRule
	if sr == nil {
		return ru, nil
	}

	for _, table := range sr.Tables {
		topology, err := table.Topology.build()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to build topology of table '%s'", table.Name)
		}
		vt := rule.NewVTable(table.Name, topology)
		vt.SetAllowFullScan(table.AllowFullScan)
		ru.SetVTable(table.Name, vt)
	}
	ru.SetBroadcastTables(sr.BroadcastTables...)

	return ru, nil
}

// BuildDatabase builds the metadata snapshot declared in configuration.
func (c *Configuration) BuildDatabase() (proto.Database, error) {
	dbType, err := c.DatabaseType()
	if err != nil {
		return nil, err
	}

	schemas := make([]proto.Schema, 0, len(c.Data.Schemas))
	for _, s := range c.Data.Schemas {
		tables := make([]*proto.TableMetadata, 0, len(s.Tables))
		for _, t := range s.Tables {
			tables = append(tables, t.toTableMetadata(dbType))
		}
		schemas = append(schemas, proto.NewSchema(dbType, s.Name, tables...))
	}

	return proto.NewDatabase(c.Data.Database.Name, dbType, schemas...), nil
}

func (t *SchemaTable) toTableMetadata(dbType proto.DatabaseType) *proto.TableMetadata {
	columns := make([]*proto.ColumnMetadata, 0, len(t.Columns))
	for _, it := range t.Columns {
		columns = append(columns, &proto.ColumnMetadata{
			Name:       it.Name,
			DataType:   it.DataType,
			PrimaryKey: it.PrimaryKey,
		})
	}
	indexes := make([]*proto.IndexMetadata, 0, len(t.Indexes))
	for _, it := range t.Indexes {
		indexes = append(indexes, &proto.IndexMetadata{
			Name:   it.Name,
			Unique: it.Unique,
		})
	}
	return proto.NewTableMetadata(dbType, t.Name, columns, indexes)
}
