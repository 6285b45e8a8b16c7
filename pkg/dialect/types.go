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

package dialect

import (
	"strings"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
)

var (
	_ proto.DatabaseType = mysqlType{}
	_ proto.DatabaseType = postgresType{}
	_ proto.DatabaseType = oracleType{}
	_ proto.DatabaseType = h2Type{}
	_ proto.DatabaseType = sqlServerType{}
)

// mysqlType treats a database as its only schema, index names never depend on case.
type mysqlType struct {
	name string
}

func (m mysqlType) Name() string {
	return m.name
}

func (m mysqlType) DefaultSchema(database string) string {
	return database
}

func (m mysqlType) QuoteCharacter() proto.QuoteCharacter {
	return proto.QuoteBack
}

func (m mysqlType) Fold(id proto.Identifier) string {
	return strings.ToLower(id.Value)
}

func (m mysqlType) FoldCatalog(name string) string {
	return strings.ToLower(name)
}

// postgresType folds unquoted names to lower case, quoted names are kept as is.
type postgresType struct {
	name string
}

func (p postgresType) Name() string {
	return p.name
}

func (p postgresType) DefaultSchema(_ string) string {
	return "public"
}

func (p postgresType) QuoteCharacter() proto.QuoteCharacter {
	return proto.QuoteDouble
}

func (p postgresType) Fold(id proto.Identifier) string {
	if id.IsQuoted() {
		return id.Value
	}
	return strings.ToLower(id.Value)
}

func (p postgresType) FoldCatalog(name string) string {
	return name
}

// oracleType folds unquoted names to upper case, the default schema is the owner user.
type oracleType struct{}

func (o oracleType) Name() string {
	return Oracle
}

func (o oracleType) DefaultSchema(database string) string {
	return strings.ToUpper(database)
}

func (o oracleType) QuoteCharacter() proto.QuoteCharacter {
	return proto.QuoteDouble
}

func (o oracleType) Fold(id proto.Identifier) string {
	return foldUpper(id)
}

func (o oracleType) FoldCatalog(name string) string {
	return name
}

type h2Type struct{}

func (h h2Type) Name() string {
	return H2
}

func (h h2Type) DefaultSchema(_ string) string {
	return "PUBLIC"
}

func (h h2Type) QuoteCharacter() proto.QuoteCharacter {
	return proto.QuoteDouble
}

func (h h2Type) Fold(id proto.Identifier) string {
	return foldUpper(id)
}

func (h h2Type) FoldCatalog(name string) string {
	return name
}

// sqlServerType assumes the default case-insensitive collation.
type sqlServerType struct{}

func (s sqlServerType) Name() string {
	return SQLServer
}

func (s sqlServerType) DefaultSchema(_ string) string {
	return "dbo"
}

func (s sqlServerType) QuoteCharacter() proto.QuoteCharacter {
	return proto.QuoteBrackets
}

func (s sqlServerType) Fold(id proto.Identifier) string {
	return strings.ToLower(id.Value)
}

func (s sqlServerType) FoldCatalog(name string) string {
	return strings.ToLower(name)
}

func foldUpper(id proto.Identifier) string {
	if id.IsQuoted() {
		return id.Value
	}
	return strings.ToUpper(id.Value)
}
