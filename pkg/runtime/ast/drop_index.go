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
	"github.com/arana-db/ddlguard/pkg/proto"
)

var (
	_ Statement = (*DropIndexStatement)(nil)
	_ Restorer  = (*DropIndexStatement)(nil)
)

// DropBehavior represents the trailing CASCADE or RESTRICT.
type DropBehavior uint8

const (
	DropBehaviorNone DropBehavior = iota
	DropBehaviorCascade
	DropBehaviorRestrict
)

// IndexSegment represents an index reference, the owner names a schema.
type IndexSegment struct {
	Owner *proto.Identifier
	Name  proto.Identifier
}

func (i *IndexSegment) Restore(_ RestoreFlag, sb *strings.Builder, _ *[]int) error {
	if i.Owner != nil {
		sb.WriteString(i.Owner.QuotedString())
		sb.WriteByte('.')
	}
	sb.WriteString(i.Name.QuotedString())
	return nil
}

// DropIndexStatement represents DROP INDEX of every dialect. MySQL requires the table
// qualifier (DROP INDEX i ON t), most others omit it and may drop several indexes at once.
type DropIndexStatement struct {
	IfExists     bool
	Concurrently bool
	Indexes      []*IndexSegment
	Table        TableName
	Behavior     DropBehavior
}

// ContainsExistClause returns true if IF EXISTS appeared.
func (d *DropIndexStatement) ContainsExistClause() bool {
	return d.IfExists
}

// SimpleTable returns the table qualifier if present.
func (d *DropIndexStatement) SimpleTable() (TableName, bool) {
	if len(d.Table) == 0 {
		return nil, false
	}
	return d.Table, true
}

// IndexNames returns the names of indexes as written.
func (d *DropIndexStatement) IndexNames() []string {
	ret := make([]string, 0, len(d.Indexes))
	for _, it := range d.Indexes {
		ret = append(ret, it.Name.String())
	}
	return ret
}

func (d *DropIndexStatement) CntParams() int {
	return 0
}

func (d *DropIndexStatement) Restore(flag RestoreFlag, sb *strings.Builder, args *[]int) error {
	writeKeyword(flag, sb, "DROP INDEX ")
	if d.Concurrently {
		writeKeyword(flag, sb, "CONCURRENTLY ")
	}
	if d.IfExists {
		writeKeyword(flag, sb, "IF EXISTS ")
	}
	for i, it := range d.Indexes {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := it.Restore(flag, sb, args); err != nil {
			return err
		}
	}
	if len(d.Table) > 0 {
		writeKeyword(flag, sb, " ON ")
		if err := d.Table.Restore(flag, sb, args); err != nil {
			return err
		}
	}
	switch d.Behavior {
	case DropBehaviorCascade:
		writeKeyword(flag, sb, " CASCADE")
	case DropBehaviorRestrict:
		writeKeyword(flag, sb, " RESTRICT")
	}
	return nil
}

func (d *DropIndexStatement) Mode() SQLType {
	return SQLTypeDropIndex
}
