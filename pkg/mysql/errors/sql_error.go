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

package errors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

import (
	perrors "github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/constants/mysql"
)

// SQLError is the error structure surfaced to MySQL clients.
type SQLError struct {
	Num     int
	State   string
	Message string
	Query   string
}

// NewSQLError creates a new SQLError.
// If sqlState is left empty, it will default to "HY000" (general error).
func NewSQLError(number int, sqlState string, format string, args ...interface{}) *SQLError {
	if sqlState == "" {
		sqlState = mysql.SSUnknownSQLState
	}
	return &SQLError{
		Num:     number,
		State:   sqlState,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (se *SQLError) Error() string {
	var buf strings.Builder
	buf.WriteString(se.Message)

	// errno and sqlstate are appended in a format NewSQLErrorFromError can parse back.
	buf.WriteString(fmt.Sprintf(" (errno %v) (sqlstate %v)", se.Num, se.State))

	if se.Query != "" {
		buf.WriteString(fmt.Sprintf(" during query: %s", se.Query))
	}

	return buf.String()
}

// Number returns the internal MySQL error code.
func (se *SQLError) Number() int {
	return se.Num
}

// SQLState returns the SQLSTATE value.
func (se *SQLError) SQLState() string {
	return se.State
}

// WithQuery returns a copy of the error bound to the given query.
func (se *SQLError) WithQuery(query string) *SQLError {
	clone := *se
	clone.Query = query
	return &clone
}

var errExtract = regexp.MustCompile(`.*\(errno ([0-9]*)\) \(sqlstate ([0-9a-zA-Z]{5})\).*`)

// NewSQLErrorFromError returns a *SQLError from the provided error.
// If it's not the right type, it still tries to get it from a regexp.
func NewSQLErrorFromError(err error) error {
	if err == nil {
		return nil
	}

	var serr *SQLError
	if perrors.As(err, &serr) {
		return serr
	}

	msg := err.Error()
	match := errExtract.FindStringSubmatch(msg)
	if len(match) < 2 {
		return NewSQLError(mysql.ERUnknownError, mysql.SSUnknownSQLState, "%v", msg)
	}

	num, err := strconv.Atoi(match[1])
	if err != nil {
		return NewSQLError(mysql.ERUnknownError, mysql.SSUnknownSQLState, "%v", msg)
	}

	return &SQLError{
		Num:     num,
		State:   match[2],
		Message: msg,
	}
}
