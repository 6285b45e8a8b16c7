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

const (
	_                SQLType = iota
	SQLTypeDropIndex         // DROP INDEX
)

var _sqlTypeNames = [...]string{
	SQLTypeDropIndex: "DROP INDEX",
}

// SQLType represents the type of SQL.
type SQLType uint8

func (s SQLType) String() string {
	if s == 0 || int(s) >= len(_sqlTypeNames) {
		return "UNKNOWN"
	}
	return _sqlTypeNames[s]
}

// RestoreFlag controls how a Statement is written back to SQL.
type RestoreFlag uint32

const (
	RestoreDefault      RestoreFlag = 0
	RestoreLowerKeyword RestoreFlag = 1 << iota
)

// Restorer restores a node back to SQL.
type Restorer interface {
	Restore(flag RestoreFlag, sb *strings.Builder, args *[]int) error
}

// Statement represents the SQL statement.
type Statement interface {
	paramsCounter
	Restorer
	// Mode returns the SQLType of current Statement.
	Mode() SQLType
}

type paramsCounter interface {
	// CntParams returns the amount of params.
	CntParams() int
}

func RestoreToString(flag RestoreFlag, r Restorer) (string, error) {
	var sb strings.Builder
	if err := r.Restore(flag, &sb, nil); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func MustRestoreToString(flag RestoreFlag, r Restorer) string {
	s, err := RestoreToString(flag, r)
	if err != nil {
		panic(err.Error())
	}
	return s
}

func writeKeyword(flag RestoreFlag, sb *strings.Builder, keyword string) {
	if flag&RestoreLowerKeyword != 0 {
		sb.WriteString(strings.ToLower(keyword))
		return
	}
	sb.WriteString(keyword)
}
