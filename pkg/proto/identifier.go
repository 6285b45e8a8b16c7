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

import (
	"strings"
)

// QuoteCharacter represents the quote style of an identifier.
type QuoteCharacter uint8

const (
	QuoteNone        QuoteCharacter = iota // unquoted
	QuoteBack                              // `name`
	QuoteDouble                            // "name"
	QuoteBrackets                          // [name]
)

var _quotePairs = [...][2]string{
	QuoteNone:     {"", ""},
	QuoteBack:     {"`", "`"},
	QuoteDouble:   {`"`, `"`},
	QuoteBrackets: {"[", "]"},
}

// Wrap wraps the input with current quote pair.
func (q QuoteCharacter) Wrap(s string) string {
	p := _quotePairs[q]
	return p[0] + s + p[1]
}

// QuoteCharacterOf detects the quote style of a raw token.
func QuoteCharacterOf(raw string) QuoteCharacter {
	if len(raw) < 2 {
		return QuoteNone
	}
	for i := QuoteBack; i <= QuoteBrackets; i++ {
		p := _quotePairs[i]
		if strings.HasPrefix(raw, p[0]) && strings.HasSuffix(raw, p[1]) {
			return i
		}
	}
	return QuoteNone
}

// Identifier represents a name written in SQL, it keeps the original spelling.
// How two identifiers compare is decided by DatabaseType, never by the Identifier itself.
type Identifier struct {
	Value string
	Quote QuoteCharacter
}

// NewIdentifier creates an unquoted Identifier.
func NewIdentifier(value string) Identifier {
	return Identifier{Value: value}
}

// ParseIdentifier creates an Identifier from a raw token, which may be quoted.
func ParseIdentifier(raw string) Identifier {
	q := QuoteCharacterOf(raw)
	if q == QuoteNone {
		return Identifier{Value: raw}
	}
	p := _quotePairs[q]
	value := raw[len(p[0]) : len(raw)-len(p[1])]
	// doubled closing quotes escape themselves
	if q != QuoteBrackets {
		value = strings.ReplaceAll(value, p[1]+p[1], p[1])
	}
	return Identifier{Value: value, Quote: q}
}

// IsQuoted returns true if the identifier was quoted.
func (id Identifier) IsQuoted() bool {
	return id.Quote != QuoteNone
}

// IsEmpty returns true if the identifier has no value.
func (id Identifier) IsEmpty() bool {
	return len(id.Value) == 0
}

// String returns the value as written, without quotes.
func (id Identifier) String() string {
	return id.Value
}

// QuotedString returns the value wrapped with its original quotes.
func (id Identifier) QuotedString() string {
	return id.Quote.Wrap(id.Value)
}
