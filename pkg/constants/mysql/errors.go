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

package mysql

// Error numbers reported back to MySQL clients.
const (
	// ERUnknownError is the generic server error.
	ERUnknownError = 1105
	// ERCantDropFieldOrKey is returned when a dropped column or index does not exist.
	ERCantDropFieldOrKey = 1091
	// ERNoSuchTable is returned when a referenced table is missing.
	ERNoSuchTable = 1146
	// ERParseError is returned for unparseable statements.
	ERParseError = 1064
)

// SQLSTATE values.
const (
	// SSUnknownSQLState is the general error state.
	SSUnknownSQLState = "HY000"
	// SSClientError is the syntax error or access rule violation class.
	SSClientError = "42000"
	// SSNoSuchTable is the base table or view not found state.
	SSNoSuchTable = "42S02"
)
