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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func atoms(words ...string) Tokens {
	toks := make(Tokens, len(words))
	for i, w := range words {
		toks[i] = Token{Kind: Atom, Text: w}
	}
	return toks
}

func TestPrettyFormat(t *testing.T) {
	tests := []struct {
		name string
		toks Tokens
		want []string
	}{
		{
			name: "flat sequence",
			toks: atoms("int", "x"),
			want: []string{"int x"},
		},
		{
			name: "struct body",
			toks: atoms("struct", "{", "int", "x", ";", "int", "y", ";", "}"),
			want: []string{
				"struct {",
				"\tint x;",
				"\tint y;",
				"}",
			},
		},
		{
			name: "nested struct with a trailing field name",
			toks: atoms("struct", "{", "struct", "{", "int", "x", ";", "}", "inner", ";", "}"),
			want: []string{
				"struct {",
				"\tstruct {",
				"\t\tint x;",
				"\t} inner;",
				"}",
			},
		},
		{
			name: "unbalanced closing brace never panics",
			toks: atoms("}", "}", "int", "x"),
			want: []string{"}", "} int x"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PrettyFormat(tc.toks)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("PrettyFormat() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
