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
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

import (
	"github.com/pkg/errors"
)

import (
	"github.com/arana-db/ddlguard/pkg/proto/rule"
)

const (
	LayoutMod   = "mod"
	LayoutBlock = "block"
)

var (
	_regexpTopology     *regexp.Regexp
	_regexpTopologyOnce sync.Once
)

func getTopologyRegexp() *regexp.Regexp {
	_regexpTopologyOnce.Do(func() {
		_regexpTopology = regexp.MustCompile(`\${(?P<begin>\d+)\.{2,}(?P<end>\d+)}`)
	})
	return _regexpTopology
}

// build expands the patterns into a topology. Physical tables are numbered globally and
// assigned to databases round-robin (mod) or in contiguous blocks (block).
func (t *Topology) build() (*rule.Topology, error) {
	dbFormat, dbBegin, dbEnd, err := parseTopology(t.DbPattern)
	if err != nil {
		return nil, err
	}
	tbFormat, tbBegin, tbEnd, err := parseTopology(t.TblPattern)
	if err != nil {
		return nil, err
	}

	if dbBegin < 0 {
		dbBegin, dbEnd = 0, 0
	}
	dbCount := dbEnd - dbBegin + 1

	var topology rule.Topology
	topology.SetRender(getRender(dbFormat), getRender(tbFormat))

	// a fixed table name means one physical table per database
	if tbBegin < 0 {
		for db := dbBegin; db <= dbEnd; db++ {
			topology.SetTopology(db, 0)
		}
		return &topology, nil
	}

	tbCount := tbEnd - tbBegin + 1
	if tbCount < dbCount {
		return nil, errors.Errorf("%d tables cannot be spread over %d databases", tbCount, dbCount)
	}

	tables := make(map[int][]int, dbCount)
	perBlock := (tbCount + dbCount - 1) / dbCount
	for i := 0; i < tbCount; i++ {
		var db int
		switch t.Layout {
		case LayoutBlock:
			db = dbBegin + i/perBlock
		case LayoutMod, "":
			db = dbBegin + i%dbCount
		default:
			return nil, errors.Errorf("unknown topology layout '%s'", t.Layout)
		}
		tables[db] = append(tables[db], tbBegin+i)
	}
	for db, tbs := range tables {
		topology.SetTopology(db, tbs...)
	}
	return &topology, nil
}

func parseTopology(input string) (format string, begin, end int, err error) {
	mats := getTopologyRegexp().FindAllStringSubmatch(input, -1)

	if len(mats) < 1 {
		format = input
		begin = -1
		end = -1
		return
	}

	if len(mats) > 1 {
		err = errors.Errorf("invalid topology expression: %s", input)
		return
	}

	var beginStr, endStr string
	for i := 1; i < len(mats[0]); i++ {
		switch getTopologyRegexp().SubexpNames()[i] {
		case "begin":
			beginStr = mats[0][i]
		case "end":
			endStr = mats[0][i]
		}
	}

	if len(beginStr) != len(endStr) {
		err = errors.Errorf("invalid topology expression: %s", input)
		return
	}

	format = getTopologyRegexp().ReplaceAllString(strings.ReplaceAll(input, "%", "%%"), fmt.Sprintf(`%%0%dd`, len(beginStr)))
	begin, _ = strconv.Atoi(beginStr)
	end, _ = strconv.Atoi(endStr)

	if begin > end {
		err = errors.Errorf("invalid topology expression: %s", input)
	}
	return
}

func getRender(format string) func(int) string {
	if strings.ContainsRune(format, '%') {
		return func(i int) string {
			return fmt.Sprintf(format, i)
		}
	}
	return func(i int) string {
		return format
	}
}
