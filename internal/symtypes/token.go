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

// Package symtypes implements the in-memory corpus of kernel .symtypes
// declarations: parsing, variant deduplication, consolidated-file encoding
// and decoding, and structural comparison of exported symbols across two
// corpora.
package symtypes

import "strings"

// Kind classifies a single token of a .symtypes record.
type Kind int

const (
	// Atom is an opaque word: an identifier, keyword, or punctuation such as
	// "{", "}", ";", "(".
	Atom Kind = iota
	// TypeRef is a reference to another record, recognized lexically by its
	// second byte being '#'.
	TypeRef
)

// Token is one word of a tokenized record, tagged as an Atom or a TypeRef.
type Token struct {
	Kind Kind
	Text string
}

// Tokens is an ordered token sequence, as it appears after a record's name.
type Tokens []Token

// Equal reports whether a and b are elementwise identical.
func (a Tokens) Equal(b Tokens) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// isTypeRef reports whether word looks like a typed reference name, i.e. its
// second character is '#'. The classification is purely lexical; the
// prefix letter (s/u/e/t/E) is never validated.
func isTypeRef(word string) bool {
	return len(word) >= 2 && word[1] == '#'
}

// isExport reports whether name is an export, i.e. its second character is
// not '#'. Names shorter than two bytes are exports.
func isExport(name string) bool {
	return !isTypeRef(name)
}

// tokenize splits a single record line (already stripped of its trailing
// newline) into a head name and its token sequence. An empty line yields an
// empty name and nil tokens; the caller decides whether that is acceptable.
func tokenize(line string) (name string, toks Tokens) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return "", nil
	}
	name = words[0]
	if len(words) > 1 {
		toks = make(Tokens, 0, len(words)-1)
		for _, w := range words[1:] {
			k := Atom
			if isTypeRef(w) {
				k = TypeRef
			}
			toks = append(toks, Token{Kind: k, Text: w})
		}
	}
	return name, toks
}

// splitTag splits a consolidated record/reference name of the form
// "<base>@<tag>" into its base name and tag. ok is false if name carries no
// "@" suffix.
func splitTag(name string) (base, tag string, ok bool) {
	i := strings.IndexByte(name, '@')
	if i < 0 {
		return name, "", false
	}
	return name[:i], name[i+1:], true
}
