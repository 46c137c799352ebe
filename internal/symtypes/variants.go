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

// variantList holds every distinct Tokens sequence observed for one record
// name. Position in the slice is the variant's internal index, stable for
// the life of the corpus.
//
// Variant counts per name are small in real corpora (under 10), so a linear
// scan on intern beats the bookkeeping of a token-sequence-keyed map.
type variantList struct {
	variants []Tokens
}

// intern returns the internal index of toks within the list, appending a new
// variant if no existing entry matches elementwise.
func (v *variantList) intern(toks Tokens) int {
	for i, existing := range v.variants {
		if existing.Equal(toks) {
			return i
		}
	}
	v.variants = append(v.variants, toks)
	return len(v.variants) - 1
}

func (v *variantList) at(idx int) Tokens {
	return v.variants[idx]
}

func (v *variantList) len() int {
	return len(v.variants)
}
