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

// Package dialect provides the DatabaseType implementations, which own how identifiers are
// folded and which schema is used by default.
package dialect

import (
	"sort"
	"strings"
	"sync"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto"
)

const (
	MySQL      = "MySQL"
	MariaDB    = "MariaDB"
	PostgreSQL = "PostgreSQL"
	OpenGauss  = "openGauss"
	Oracle     = "Oracle"
	SQLServer  = "SQLServer"
	H2         = "H2"
)

var (
	_mu    sync.RWMutex
	_types = make(map[string]proto.DatabaseType)
)

func init() {
	Register(mysqlType{name: MySQL})
	Register(mysqlType{name: MariaDB})
	Register(postgresType{name: PostgreSQL})
	Register(postgresType{name: OpenGauss})
	Register(oracleType{})
	Register(h2Type{})
	Register(sqlServerType{})
}

// Register registers a DatabaseType, an existing one with the same name will be replaced.
func Register(t proto.DatabaseType) {
	_mu.Lock()
	_types[strings.ToLower(t.Name())] = t
	_mu.Unlock()
}

// Get returns the DatabaseType by name, case-insensitive.
func Get(name string) (proto.DatabaseType, error) {
	_mu.RLock()
	t, ok := _types[strings.ToLower(name)]
	_mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("dialect: unsupported database type '%s'", name)
	}
	return t, nil
}

// MustGet returns the DatabaseType by name, panic if not found.
func MustGet(name string) proto.DatabaseType {
	t, err := Get(name)
	if err != nil {
		panic(err.Error())
	}
	return t
}

// Default returns the default DatabaseType, which is MySQL.
func Default() proto.DatabaseType {
	return MustGet(MySQL)
}

// Names returns the names of all registered dialects.
func Names() []string {
	_mu.RLock()
	defer _mu.RUnlock()
	ret := make([]string, 0, len(_types))
	for _, it := range _types {
		ret = append(ret, it.Name())
	}
	sort.Strings(ret)
	return ret
}

// IsMySQLFamily returns true if the dialect speaks the MySQL grammar.
func IsMySQLFamily(t proto.DatabaseType) bool {
	if t == nil {
		return true
	}
	_, ok := t.(mysqlType)
	return ok
}
