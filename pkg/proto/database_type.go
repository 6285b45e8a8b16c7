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

package proto

// DatabaseType represents a SQL dialect, it owns the identifier folding rules.
type DatabaseType interface {
	// Name returns the display name of the dialect, eg: MySQL.
	Name() string
	// DefaultSchema returns the schema used when a name is not qualified.
	DefaultSchema(database string) string
	// QuoteCharacter returns the preferred quote of the dialect.
	QuoteCharacter() QuoteCharacter
	// Fold returns the lookup key of an identifier written by user.
	Fold(id Identifier) string
	// FoldCatalog returns the lookup key of a name stored in the catalog.
	FoldCatalog(name string) string
}
