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

package engine

import (
	"context"
	"time"
)

import (
	"github.com/pkg/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/metrics"
	"github.com/arana-db/ddlguard/pkg/proto"
	"github.com/arana-db/ddlguard/pkg/proto/hint"
	"github.com/arana-db/ddlguard/pkg/proto/rule"
	"github.com/arana-db/ddlguard/pkg/runtime/ast"
	rcontext "github.com/arana-db/ddlguard/pkg/runtime/context"
	"github.com/arana-db/ddlguard/pkg/runtime/route"
	"github.com/arana-db/ddlguard/pkg/runtime/validator"
	_ "github.com/arana-db/ddlguard/pkg/runtime/validator/ddl"
	"github.com/arana-db/ddlguard/pkg/trace"
	"github.com/arana-db/ddlguard/pkg/util/log"
)

var Tracer = otel.Tracer("validator")

// Result is the outcome of a successful check.
type Result struct {
	Statement ast.Statement
	Hints     []*hint.Hint
	Route     *route.Context
}

type Option func(*Engine)

// WithMetrics sets the collector which the outcomes are recorded into.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// Engine checks statements against one rule and metadata snapshot.
type Engine struct {
	rule    *rule.Rule
	db      proto.Database
	props   *config.Props
	router  *route.Router
	metrics *metrics.Collector
}

func New(ru *rule.Rule, db proto.Database, props *config.Props, opts ...Option) *Engine {
	e := &Engine{
		rule:   ru,
		db:     db,
		props:  props,
		router: route.NewRouter(ru, db),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewDefaultCollector()
	}
	return e
}

// Metrics returns the collector of the engine.
func (e *Engine) Metrics() *metrics.Collector {
	return e.metrics
}

// Check parses the sql and runs pre-validate, route and post-validate in order.
// A rejection is returned as a *validator.Error.
func (e *Engine) Check(ctx context.Context, sql string, args ...proto.Value) (*Result, error) {
	start := time.Now()

	if timeout := e.props.GetDuration(config.PropCheckTimeout, 0); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx = rcontext.WithSQL(ctx, sql)
	ctx = rcontext.WithSchema(ctx, e.db.Name())

	if e.props.SQLShow() {
		log.InfofWithLogType(log.ValidationLog, "[%s] check sql: %s", e.db.Name(), sql)
	}

	hints, stmt, err := ast.Parse(sql, ast.WithDatabaseType(e.db.Type()))
	if err != nil {
		e.metrics.RecordValidation(ast.SQLType(0).String(), metrics.PhaseParse, metrics.ResultError)
		return nil, errors.Wrapf(err, "failed to parse sql '%s'", sql)
	}
	e.metrics.RecordValidation(stmt.Mode().String(), metrics.PhaseParse, metrics.ResultPass)

	ctx, _ = trace.Extract(ctx, hints)
	ctx = rcontext.WithHints(ctx, hints)

	ctx, span := Tracer.Start(ctx, "Engine.Check")
	span.SetAttributes(
		attribute.Key("sql.type").String(stmt.Mode().String()),
		attribute.Key("db.name").String(e.db.Name()),
	)
	defer func() {
		span.End()
		e.metrics.ObserveDuration(stmt.Mode().String(), time.Since(start))
	}()

	v, err := validator.Get(stmt.Mode())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	sc := &validator.StatementContext{
		Statement:    stmt,
		DatabaseType: e.db.Type(),
	}

	if err = e.phase(ctx, metrics.PhasePre, stmt, func(ctx context.Context) error {
		return v.PreValidate(ctx, e.rule, sc, args, e.db)
	}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var rc *route.Context
	if err = e.phase(ctx, metrics.PhaseRoute, stmt, func(ctx context.Context) error {
		rc, err = e.router.Route(ctx, stmt, hints)
		return err
	}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err = e.phase(ctx, metrics.PhasePost, stmt, func(ctx context.Context) error {
		return v.PostValidate(ctx, e.rule, sc, args, e.db, e.props, rc)
	}); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return &Result{
		Statement: stmt,
		Hints:     hints,
		Route:     rc,
	}, nil
}

func (e *Engine) phase(ctx context.Context, name string, stmt ast.Statement, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		e.metrics.RecordValidation(stmt.Mode().String(), name, metrics.ResultError)
		return errors.Wrapf(err, "check aborted before %s", name)
	}

	ctx, span := Tracer.Start(ctx, name)
	defer span.End()

	err := fn(ctx)
	switch {
	case err == nil:
		e.metrics.RecordValidation(stmt.Mode().String(), name, metrics.ResultPass)
	case validator.KindOf(err) != 0:
		e.metrics.RecordValidation(stmt.Mode().String(), name, metrics.ResultReject)
		span.SetAttributes(attribute.Key("validator.kind").String(validator.KindOf(err).String()))
		span.SetStatus(codes.Error, err.Error())
		log.Debugf("[%s] %s rejected: sql=%s, reason=%s", e.db.Name(), name, rcontext.SQL(ctx), err)
	default:
		e.metrics.RecordValidation(stmt.Mode().String(), name, metrics.ResultError)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
