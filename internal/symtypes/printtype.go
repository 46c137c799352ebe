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
	"fmt"
	"io"
)

// PrintType is a debugging aid, not one of the two headline operations: for
// every file that declares name, it prints the file's path followed by
// name's single-line (non-pretty) token sequence and, transitively, every
// type it references, each printed at most once per file.
func (c *Corpus) PrintType(name string, w io.Writer) error {
	found := false
	for _, fr := range c.files {
		if _, ok := fr.Lookup(name); !ok {
			continue
		}
		found = true
		fmt.Fprintf(w, "%s:\n", fr.Path)
		c.printFileType(fr, name, make(map[string]bool), w)
	}
	if !found {
		return fmt.Errorf("type %s is not known", name)
	}
	return nil
}

func (c *Corpus) printFileType(fr *FileRecord, name string, processed map[string]bool, w io.Writer) {
	if processed[name] {
		return
	}
	processed[name] = true

	toks := lookupTokens(c, fr, name)
	for _, tok := range toks {
		if tok.Kind == TypeRef {
			c.printFileType(fr, tok.Text, processed, w)
		}
	}

	if len(toks) > 0 {
		fmt.Fprintf(w, "%s %s\n", name, tokenText(toks))
	} else {
		fmt.Fprintln(w, name)
	}
}
