// Copyright 2023 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package symtypes

import "strings"

// PrettyFormat renders a token sequence as indented multi-line text
// suitable for line-oriented diffing (spec §4.6). "{" opens a new indented
// block, "}" closes it, and ";"/"," terminate the current line; every other
// token is appended with a single separating space. Imbalanced brackets
// never panic: indent is clamped at zero.
func PrettyFormat(toks Tokens) []string {
	var lines []string
	indent := 0
	var line strings.Builder

	flush := func() {
		if line.Len() > 0 {
			lines = append(lines, line.String())
			line.Reset()
		}
	}
	startLine := func() {
		for i := 0; i < indent; i++ {
			line.WriteByte('\t')
		}
	}

	for _, tok := range toks {
		switch tok.Text {
		case "}":
			flush()
			if indent > 0 {
				indent--
			}
			startLine()
			line.WriteByte('}')

		case "{":
			isFirst := line.Len() == 0
			if isFirst {
				startLine()
			}
			if !isFirst {
				line.WriteByte(' ')
			}
			line.WriteByte('{')
			lines = append(lines, line.String())
			line.Reset()
			indent++

		case ";", ",":
			if line.Len() == 0 {
				startLine()
			}
			line.WriteString(tok.Text)
			lines = append(lines, line.String())
			line.Reset()

		default:
			isFirst := line.Len() == 0
			if isFirst {
				startLine()
			} else {
				line.WriteByte(' ')
			}
			line.WriteString(tok.Text)
		}
	}

	flush()
	return lines
}
