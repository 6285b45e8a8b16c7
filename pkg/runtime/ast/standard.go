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
	"strings"
)

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
)

const (
	_hintPrefix = "/*A!"
	_hintSuffix = "*/"
)

// standardLexer tokenizes the DROP INDEX forms of PostgreSQL, openGauss, Oracle, SQLServer and H2.
var standardLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hint", Pattern: `/\*A!(?:[^*]|\*[^/])*\*/`},
	{Name: "Comment", Pattern: `/\*(?:[^*]|\*[^/])*\*/|--[^\n]*`},
	{Name: "QuotedIdent", Pattern: "`(?:``|[^`])*`|\"(?:\"\"|[^\"])*\"|\\[[^\\]]*\\]"},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$#]*`},
	{Name: "Punct", Pattern: `[.,;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type rawDropIndex struct {
	Concurrently bool       `parser:"\"DROP\" \"INDEX\" @\"CONCURRENTLY\"?"`
	IfExists     bool       `parser:"@(\"IF\" \"EXISTS\")?"`
	Indexes      []*rawName `parser:"@@ ( \",\" @@ )*"`
	Table        *rawName   `parser:"( \"ON\" @@ )?"`
	Behavior     string     `parser:"@( \"CASCADE\" | \"RESTRICT\" )? \";\"?"`
}

type rawName struct {
	Parts []string `parser:"@( QuotedIdent | Ident ) ( \".\" @( QuotedIdent | Ident ) )*"`
}

var standardParser = participle.MustBuild[rawDropIndex](
	participle.Lexer(standardLexer),
	participle.Elide("Whitespace", "Comment", "Hint"),
	participle.CaseInsensitive("Ident"),
	participle.UseLookahead(2),
)

// parseStandard parses the SQL of non-MySQL dialects, hints in format '/*A! ... */' are extracted.
func parseStandard(sql string) ([]string, Statement, error) {
	hints, err := extractHints(sql)
	if err != nil {
		return nil, nil, err
	}

	raw, err := standardParser.ParseString("", sql)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to parse sql '%s'", sql)
	}

	stmt := &DropIndexStatement{
		IfExists:     raw.IfExists,
		Concurrently: raw.Concurrently,
		Indexes:      make([]*IndexSegment, 0, len(raw.Indexes)),
	}

	for _, it := range raw.Indexes {
		var seg *IndexSegment
		if seg, err = it.toIndexSegment(); err != nil {
			return nil, nil, err
		}
		stmt.Indexes = append(stmt.Indexes, seg)
	}

	if raw.Table != nil {
		stmt.Table = raw.Table.toTableName()
	}

	switch strings.ToUpper(raw.Behavior) {
	case "CASCADE":
		stmt.Behavior = DropBehaviorCascade
	case "RESTRICT":
		stmt.Behavior = DropBehaviorRestrict
	}

	return hints, stmt, nil
}

func extractHints(sql string) ([]string, error) {
	lex, err := standardLexer.LexString("", sql)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	hintType := standardLexer.Symbols()["Hint"]

	var hints []string
	for _, tok := range tokens {
		if tok.Type != hintType {
			continue
		}
		s := strings.TrimSuffix(strings.TrimPrefix(tok.Value, _hintPrefix), _hintSuffix)
		hints = append(hints, strings.TrimSpace(s))
	}
	return hints, nil
}

func (r *rawName) toIndexSegment() (*IndexSegment, error) {
	switch len(r.Parts) {
	case 1:
		return &IndexSegment{Name: proto.ParseIdentifier(r.Parts[0])}, nil
	case 2:
		owner := proto.ParseIdentifier(r.Parts[0])
		return &IndexSegment{Owner: &owner, Name: proto.ParseIdentifier(r.Parts[1])}, nil
	default:
		return nil, errors.Errorf("invalid index name '%s'", strings.Join(r.Parts, "."))
	}
}

func (r *rawName) toTableName() TableName {
	ret := make(TableName, 0, len(r.Parts))
	for _, it := range r.Parts {
		ret = append(ret, proto.ParseIdentifier(it))
	}
	return ret
}
