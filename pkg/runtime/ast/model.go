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

// TableName represents a possibly qualified table name, eg: sales.t_order.
type TableName []proto.Identifier

// NewTableName creates a TableName from unquoted parts.
func NewTableName(parts ...string) TableName {
	ret := make(TableName, 0, len(parts))
	for _, it := range parts {
		ret = append(ret, proto.NewIdentifier(it))
	}
	return ret
}

func (t TableName) Restore(_ RestoreFlag, sb *strings.Builder, _ *[]int) error {
	for i, it := range t {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(it.QuotedString())
	}
	return nil
}

func (t TableName) String() string {
	return MustRestoreToString(RestoreDefault, t)
}

// Prefix returns the owner of the table, or nil if the name is not qualified.
func (t TableName) Prefix() *proto.Identifier {
	if len(t) > 1 {
		prefix := t[len(t)-2]
		return &prefix
	}
	return nil
}

// Suffix returns the table name without owner.
func (t TableName) Suffix() proto.Identifier {
	return t[len(t)-1]
}
