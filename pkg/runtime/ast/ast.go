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

package ast

import (
	"github.com/arana-db/parser"
	"github.com/arana-db/parser/ast"
	_ "github.com/arana-db/parser/test_driver"

	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/dialect"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/proto/hint"
)

type (
	parseOption struct {
		charset   string
		collation string
		dbType    proto.DatabaseType
	}

	ParseOption func(*parseOption)
)

// WithCharset sets the charset.
func WithCharset(charset string) ParseOption {
	return func(option *parseOption) {
		option.charset = charset
	}
}

// WithCollation sets the collation.
func WithCollation(collation string) ParseOption {
	return func(option *parseOption) {
		option.collation = collation
	}
}

// WithDatabaseType sets the dialect of input SQL, MySQL is used by default.
func WithDatabaseType(dbType proto.DatabaseType) ParseOption {
	return func(option *parseOption) {
		option.dbType = dbType
	}
}

// FromStmtNode converts raw ast node to Statement.
func FromStmtNode(node ast.StmtNode) (Statement, error) {
	switch stmt := node.(type) {
	case *ast.DropIndexStmt:
		return convDropIndexStmt(stmt), nil
	default:
		return nil, errors.Errorf("unimplement: stmt type %T!", stmt)
	}
}

func convDropIndexStmt(stmt *ast.DropIndexStmt) *DropIndexStatement {
	var tableName TableName
	if db := stmt.Table.Schema.O; len(db) > 0 {
		tableName = append(tableName, proto.NewIdentifier(db))
	}
	tableName = append(tableName, proto.NewIdentifier(stmt.Table.Name.O))
	return &DropIndexStatement{
		IfExists: stmt.IfExists,
		Indexes: []*IndexSegment{
			{Name: proto.NewIdentifier(stmt.IndexName)},
		},
		Table: tableName,
	}
}

// Parse parses the SQL string to Statement.
func Parse(sql string, options ...ParseOption) ([]*hint.Hint, Statement, error) {
	var o parseOption
	for _, it := range options {
		it(&o)
	}

	var (
		stmt     Statement
		hintStrs []string
		err      error
	)

	if dialect.IsMySQLFamily(o.dbType) {
		var s ast.StmtNode
		if s, err = parser.New().ParseOneStmt(sql, o.charset, o.collation); err != nil {
			return nil, nil, err
		}
		hintStrs = s.Hints()
		if stmt, err = FromStmtNode(s); err != nil {
			return nil, nil, err
		}
	} else if hintStrs, stmt, err = parseStandard(sql); err != nil {
		return nil, nil, err
	}

	if len(hintStrs) < 1 {
		return nil, stmt, nil
	}

	hints := make([]*hint.Hint, 0, len(hintStrs))
	for _, it := range hintStrs {
		var h *hint.Hint
		if h, err = hint.Parse(it); err != nil {
			return nil, nil, errors.WithStack(err)
		}
		hints = append(hints, h)
	}

	return hints, stmt, nil
}

// ParseDropIndex parses the SQL string to DropIndexStatement.
func ParseDropIndex(sql string, options ...ParseOption) ([]*hint.Hint, *DropIndexStatement, error) {
	h, s, err := Parse(sql, options...)
	if err != nil {
		return nil, nil, err
	}

	stmt, ok := s.(*DropIndexStatement)
	if !ok {
		return nil, nil, errors.Errorf("incorrect statement type: expect=%T, actual=%T", (*DropIndexStatement)(nil), s)
	}

	return h, stmt, nil
}

// MustParse parses the SQL string to Statement, panic if failed.
func MustParse(sql string, options ...ParseOption) ([]*hint.Hint, Statement) {
	hints, stmt, err := Parse(sql, options...)
	if err != nil {
		panic(err.Error())
	}
	return hints, stmt
}
