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

package jaeger

import (
	"context"
)

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/proto/hint"
	"github.com/arana-db/ddlguard/pkg/trace"
)

const (
	parentKey = "traceparent"
)

type Jaeger struct{}

func init() {
	trace.RegisterProviders(trace.Jaeger, &Jaeger{})
}

func (j *Jaeger) Initialize(_ context.Context, traceCfg *config.Trace) error {
	tp, err := j.tracerProvider(traceCfg)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(&propagation.TraceContext{})
	return nil
}

func (j *Jaeger) tracerProvider(traceCfg *config.Trace) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(traceCfg.Address)))
	if err != nil {
		return nil, err
	}
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(trace.Service),
		)),
	)
	return tp, nil
}

// Extract reads a W3C traceparent from the first TRACE hint.
func (j *Jaeger) Extract(ctx context.Context, hints []*hint.Hint) (context.Context, bool) {
	var traceContext string
	for _, h := range hints {
		if h.Type != hint.TypeTrace || len(h.Inputs) < 1 {
			continue
		}
		traceContext = h.Inputs[0].V
		break
	}
	if len(traceContext) == 0 {
		return ctx, false
	}
	return otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier{parentKey: traceContext}), true
}
