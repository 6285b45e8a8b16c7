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
	"context"
	"sync"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/runtime/ast"
)

var (
	_mu         sync.RWMutex
	_validators = make(map[ast.SQLType]StatementValidator)
)

// ShardingRule is the view of sharding rule which validators depend on.
type ShardingRule interface {
	// IsSharded returns true if the logical table is sharded.
	IsSharded(table string) bool
	// ConfiguredDataNodeCount returns the amount of configured data nodes of the logical table.
	ConfiguredDataNodeCount(table string) int
}

// RouteContext is the view of route result which validators depend on.
type RouteContext interface {
	// RoutedDataNodeCount returns the amount of distinct data nodes routed for the logical table.
	RoutedDataNodeCount(table string) int
}

// StatementContext carries a parsed statement and its dialect.
type StatementContext struct {
	Statement    ast.Statement
	DatabaseType proto.DatabaseType
}

// StatementValidator validates a statement before and after it is routed.
type StatementValidator interface {
	// PreValidate validates the statement against metadata.
	PreValidate(ctx context.Context, rule ShardingRule, sc *StatementContext, params []proto.Value, db proto.Database) error
	// PostValidate validates the statement against the route result.
	PostValidate(ctx context.Context, rule ShardingRule, sc *StatementContext, params []proto.Value, db proto.Database, props *config.Props, route RouteContext) error
}

// Register registers the validator of a SQLType.
func Register(t ast.SQLType, v StatementValidator) {
	_mu.Lock()
	defer _mu.Unlock()
	_validators[t] = v
}

// Get returns the validator of a SQLType.
func Get(t ast.SQLType) (StatementValidator, error) {
	_mu.RLock()
	defer _mu.RUnlock()
	v, ok := _validators[t]
	if !ok {
		return nil, errors.Errorf("validator: no validator found for '%s'", t)
	}
	return v, nil
}
