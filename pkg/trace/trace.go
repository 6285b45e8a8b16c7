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

package trace

import (
	"context"
	"sync"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/config"
	"github.com/arana-db/ddlguard/pkg/proto/hint"
)

const (
	Service              = "ddlguard"
	Jaeger  ProviderType = "jaeger"
)

type ProviderType string

var (
	providers       = make(map[ProviderType]Provider, 8)
	currentProvider Provider
	once            sync.Once
)

func RegisterProviders(pType ProviderType, p Provider) {
	providers[pType] = p
}

// Initialize installs the provider named by the trace configuration, only the first call takes effect.
func Initialize(ctx context.Context, traceCfg *config.Trace) error {
	if traceCfg == nil {
		return nil
	}
	var err error
	once.Do(func() {
		v, ok := providers[ProviderType(traceCfg.Type)]
		if !ok {
			err = errors.Errorf("not supported %s trace provider", traceCfg.Type)
			return
		}
		if err = v.Initialize(ctx, traceCfg); err != nil {
			return
		}
		currentProvider = v
	})
	return err
}

// Extract returns a context carrying the remote span described by the TRACE hint.
// The input context is returned unchanged when no provider is installed or no hint matches.
func Extract(ctx context.Context, hints []*hint.Hint) (context.Context, bool) {
	if currentProvider == nil {
		return ctx, false
	}
	return currentProvider.Extract(ctx, hints)
}

type Provider interface {
	Initialize(ctx context.Context, traceCfg *config.Trace) error
	Extract(ctx context.Context, hints []*hint.Hint) (context.Context, bool)
}
