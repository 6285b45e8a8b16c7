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

package validator

import (
	"fmt"
	"strings"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/constants/mysql"
	mysqlErrors "github.com/arana-db/ddlguard/pkg/mysql/errors"
)

const (
	_ Kind = iota
	KindIndexNotFound
	KindInconsistentRouteFanout
)

var _kindNames = [...]string{
	KindIndexNotFound:           "IndexNotFound",
	KindInconsistentRouteFanout: "InconsistentRouteFanout",
}

var (
	ErrIndexNotFound           = &Error{Kind: KindIndexNotFound}
	ErrInconsistentRouteFanout = &Error{Kind: KindInconsistentRouteFanout}
)

// Kind represents the kind of validation failure.
type Kind uint8

func (k Kind) String() string {
	if k == 0 || int(k) >= len(_kindNames) {
		return "Unknown"
	}
	return _kindNames[k]
}

// Error is a tagged validation error, the caller should abort the statement.
type Error struct {
	Kind    Kind
	Message string
	Indexes []string
}

// NewIndexNotFoundError creates an error for the index which does not exist.
func NewIndexNotFoundError(index string) *Error {
	return &Error{
		Kind:    KindIndexNotFound,
		Message: fmt.Sprintf("Index '%s' does not exist.", index),
		Indexes: []string{index},
	}
}

// NewInconsistentRouteFanoutError creates an error listing all indexes of the statement.
func NewInconsistentRouteFanoutError(indexes []string) *Error {
	return &Error{
		Kind:    KindInconsistentRouteFanout,
		Message: fmt.Sprintf("DROP INDEX ... statement can not route correctly for indexes [%s].", strings.Join(indexes, ", ")),
		Indexes: indexes,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// SQLError converts the error to a MySQL error.
func (e *Error) SQLError() *mysqlErrors.SQLError {
	switch e.Kind {
	case KindIndexNotFound:
		return mysqlErrors.NewSQLError(mysql.ERCantDropFieldOrKey, mysql.SSClientError, "%s", e.Message)
	default:
		return mysqlErrors.NewSQLError(mysql.ERUnknownError, mysql.SSUnknownSQLState, "%s", e.Message)
	}
}

// KindOf returns the kind of a validation error, zero if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
