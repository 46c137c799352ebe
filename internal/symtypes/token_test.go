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

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantName string
		wantToks Tokens
	}{
		{
			name:     "empty line",
			line:     "",
			wantName: "",
			wantToks: nil,
		},
		{
			name:     "name only",
			line:     "s#foo",
			wantName: "s#foo",
			wantToks: nil,
		},
		{
			name:     "atoms and a type reference",
			line:     "foo struct s#bar { int x ; }",
			wantName: "foo",
			wantToks: Tokens{
				{Kind: Atom, Text: "struct"},
				{Kind: TypeRef, Text: "s#bar"},
				{Kind: Atom, Text: "{"},
				{Kind: Atom, Text: "int"},
				{Kind: Atom, Text: "x"},
				{Kind: Atom, Text: ";"},
				{Kind: Atom, Text: "}"},
			},
		},
		{
			name:     "extra whitespace is collapsed",
			line:     "foo   bar   baz",
			wantName: "foo",
			wantToks: Tokens{
				{Kind: Atom, Text: "bar"},
				{Kind: Atom, Text: "baz"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			name, toks := tokenize(tc.line)
			if name != tc.wantName {
				t.Errorf("tokenize(%q) name = %q, want %q", tc.line, name, tc.wantName)
			}
			if diff := cmp.Diff(tc.wantToks, toks); diff != "" {
				t.Errorf("tokenize(%q) tokens mismatch (-want +got):\n%s", tc.line, diff)
			}
		})
	}
}

func TestIsTypeRef(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"s#foo", true},
		{"u#foo", true},
		{"e#foo", true},
		{"t#foo", true},
		{"E#foo", true},
		{"foo", false},
		{"f", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := isTypeRef(tc.word); got != tc.want {
			t.Errorf("isTypeRef(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		name     string
		wantBase string
		wantTag  string
		wantOK   bool
	}{
		{"s#foo@0", "s#foo", "0", true},
		{"s#foo", "s#foo", "", false},
		{"bar@1", "bar", "1", true},
	}
	for _, tc := range tests {
		base, tag, ok := splitTag(tc.name)
		if base != tc.wantBase || tag != tc.wantTag || ok != tc.wantOK {
			t.Errorf("splitTag(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.name, base, tag, ok, tc.wantBase, tc.wantTag, tc.wantOK)
		}
	}
}

func TestTokensEqual(t *testing.T) {
	a := Tokens{{Kind: Atom, Text: "x"}, {Kind: TypeRef, Text: "s#y"}}
	b := Tokens{{Kind: Atom, Text: "x"}, {Kind: TypeRef, Text: "s#y"}}
	c := Tokens{{Kind: Atom, Text: "x"}}

	if !a.Equal(b) {
		t.Errorf("expected a.Equal(b) to be true")
	}
	if a.Equal(c) {
		t.Errorf("expected a.Equal(c) to be false")
	}
}
