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

package tableprint

import (
	"fmt"
	"io"
	"os"
)

import (
	"github.com/olekukonko/tablewriter"
)

// PrintTable prints rows as table format.
func PrintTable(header []string, rows [][]string) {
	WriteTable(os.Stdout, header, rows, true)
}

// WriteTable writes table into writer.
func WriteTable(w io.Writer, header []string, rows [][]string, color bool) {
	if color {
		colored := make([]string, 0, len(header))
		for _, h := range header {
			colored = append(colored, fmt.Sprintf("\033[32m%s\033[0m", h))
		}
		header = colored
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}
