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

package check

import (
	"bytes"
	"context"
	"testing"
)

import (
	"github.com/stretchr/testify/assert"
)

import (
	"github.com/arana-db/ddlguard/testdata"
)

func TestRun(t *testing.T) {
	configPath := testdata.Path("fixtures/config.yaml")

	type tt struct {
		name   string
		sql    string
		code   int
		output string
	}

	for _, it := range []tt{
		{"ok", "DROP INDEX idx_order_created ON t_order", 0, "| t_order       | employees_0001 | t_order_0003 |"},
		{"not_found", "DROP INDEX idx_absent ON t_order", 1, "Index 'idx_absent' does not exist. (errno 1091) (sqlstate 42000)"},
		{"fanout", "/*A! direct() */ DROP INDEX idx_order_created ON t_order", 1, "can not route correctly for indexes [idx_order_created]"},
		{"bad_sql", "DROP TABLE t_order", 1, "ERROR: "},
	} {
		t.Run(it.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := Run(context.Background(), &buf, configPath, it.sql, "")
			assert.Equal(t, it.code, code)
			assert.Contains(t, buf.String(), it.output)
		})
	}
}

func TestRun_BadConfig(t *testing.T) {
	var buf bytes.Buffer
	code := Run(context.Background(), &buf, testdata.Path("fixtures/absent.yaml"), "DROP INDEX idx ON t", "")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "failed to load configuration file")

	buf.Reset()
	code = Run(context.Background(), &buf, testdata.Path("fixtures/config.yaml"), "DROP INDEX idx ON t", "root@tcp(127.0.0.1:3306)/")
	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "no database specified in dsn")
}
