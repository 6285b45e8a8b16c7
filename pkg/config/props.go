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

package config

import (
	"strings"
	"time"
)

import (
	"github.com/spf13/cast"
)

// Keys of props.
const (
	PropSQLShow       = "sql-show"       // log every checked SQL
	PropCheckTimeout  = "check-timeout"  // timeout of one check, eg: 3s
	PropMetadataCache = "metadata-cache" // capacity of metadata cache, in schemas
)

// Props represents the string properties of configuration, keys are case-insensitive.
// A nil *Props is valid and empty.
type Props struct {
	values map[string]string
}

// NewProps creates Props.
func NewProps(values map[string]string) *Props {
	p := &Props{
		values: make(map[string]string, len(values)),
	}
	for k, v := range values {
		p.values[strings.ToLower(k)] = v
	}
	return p
}

// Get returns the raw value.
func (p *Props) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[strings.ToLower(key)]
	return v, ok
}

// GetString returns the value or the default value.
func (p *Props) GetString(key, defaultValue string) string {
	if v, ok := p.Get(key); ok {
		return v
	}
	return defaultValue
}

// GetBool returns the value as bool, the default value is returned if absent or malformed.
func (p *Props) GetBool(key string, defaultValue bool) bool {
	v, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetInt returns the value as int, the default value is returned if absent or malformed.
func (p *Props) GetInt(key string, defaultValue int) int {
	v, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetDuration returns the value as time.Duration, plain numbers are seconds.
func (p *Props) GetDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := p.Get(key)
	if !ok {
		return defaultValue
	}
	if n, err := cast.ToInt64E(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// SQLShow returns true if the checked SQL should be logged.
func (p *Props) SQLShow() bool {
	return p.GetBool(PropSQLShow, false)
}
