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

package context

import (
	"context"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto/hint"
)

type (
	keySql    struct{}
	keySchema struct{}
	keyHints  struct{}
)

// WithSQL binds the original sql.
func WithSQL(ctx context.Context, sql string) context.Context {
	return context.WithValue(ctx, keySql{}, sql)
}

// WithSchema binds the logical database which the statement is checked against.
func WithSchema(ctx context.Context, data string) context.Context {
	return context.WithValue(ctx, keySchema{}, data)
}

// WithHints binds the hints.
func WithHints(ctx context.Context, hints []*hint.Hint) context.Context {
	return context.WithValue(ctx, keyHints{}, hints)
}

// SQL returns the original sql string.
func SQL(ctx context.Context) string {
	if sql, ok := ctx.Value(keySql{}).(string); ok {
		return sql
	}
	return ""
}

func Schema(ctx context.Context) string {
	if schema, ok := ctx.Value(keySchema{}).(string); ok {
		return schema
	}
	return ""
}

// Hints extracts the hints.
func Hints(ctx context.Context) []*hint.Hint {
	hints, ok := ctx.Value(keyHints{}).([]*hint.Hint)
	if !ok {
		return nil
	}
	return hints
}
