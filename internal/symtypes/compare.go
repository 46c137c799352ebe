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
	"bufio"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"
)

// change is one distinct structural mismatch found for a type name: the
// token sequence as seen in A versus as seen in B.
type change struct {
	a, b Tokens
}

func lookupTokens(c *Corpus, fr *FileRecord, name string) Tokens {
	idx, ok := fr.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("type %q is not known in file %q", name, fr.Path))
	}
	vl := c.variantsOf(name)
	if vl == nil {
		panic(fmt.Sprintf("type %q has a missing declaration", name))
	}
	return vl.at(idx)
}

// recordChange appends (a, b) under name unless an elementwise-identical
// pair is already present (spec §4.5 step 4).
func recordChange(changes map[string][]change, name string, a, b Tokens) {
	for _, ch := range changes[name] {
		if ch.a.Equal(a) && ch.b.Equal(b) {
			return
		}
	}
	changes[name] = append(changes[name], change{a, b})
}

func mergeChanges(dst map[string][]change, src map[string][]change) {
	for name, list := range src {
		for _, ch := range list {
			recordChange(dst, name, ch.a, ch.b)
		}
	}
}

// compareTypes is the recursive walk of spec §4.5 step 3: it compares the
// token sequence of name as resolved in fa (against self/c) and fb (against
// other), recursing into shared-name TypeRef positions and recording a
// mismatch under name's own entry in changes when the sequences differ.
func (c *Corpus) compareTypes(other *Corpus, fa, fb *FileRecord, name string, processed map[string]bool, changes map[string][]change) {
	if processed[name] {
		return
	}
	processed[name] = true

	ta := lookupTokens(c, fa, name)
	tb := lookupTokens(other, fb, name)

	equal := len(ta) == len(tb)
	minLen := len(ta)
	if len(tb) < minLen {
		minLen = len(tb)
	}
	for i := 0; i < minLen; i++ {
		ka, kb := ta[i], tb[i]
		switch {
		case ka.Kind == TypeRef && kb.Kind == TypeRef:
			if ka.Text == kb.Text {
				c.compareTypes(other, fa, fb, ka.Text, processed, changes)
			} else {
				equal = false
			}
		case ka.Kind == Atom && kb.Kind == Atom:
			if ka.Text != kb.Text {
				equal = false
			}
		default:
			equal = false
		}
	}

	if !equal {
		recordChange(changes, name, ta, tb)
	}
}

// unifiedDiff renders a '+'/'-'/' ' prefixed line diff between two
// pretty-printed forms, using go-difflib's SequenceMatcher opcodes directly
// (spec §4.5 step 5 treats the underlying diff algorithm as an external,
// pure function over two line sequences).
func unifiedDiff(a, b []string) []string {
	m := difflib.NewMatcher(a, b)
	var out []string
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, line := range a[op.I1:op.I2] {
				out = append(out, " "+line)
			}
		case 'd':
			for _, line := range a[op.I1:op.I2] {
				out = append(out, "-"+line)
			}
		case 'i':
			for _, line := range b[op.J1:op.J2] {
				out = append(out, "+"+line)
			}
		case 'r':
			for _, line := range a[op.I1:op.I2] {
				out = append(out, "-"+line)
			}
			for _, line := range b[op.J1:op.J2] {
				out = append(out, "+"+line)
			}
		}
	}
	return out
}

// Compare implements spec §4.5: it writes, to w, every export present in
// exactly one of c ("A") and other ("B"), followed by a pretty-printed
// unified diff for every structurally-distinct type reachable from a
// shared export.
//
// Per-export walks are independent given a read-only c and other, so they
// run over a bounded worker pool (spec §5); the shared changes map is
// merged under a mutex, the processed-name set is goroutine-local, and
// final emission sorts before printing for deterministic output.
func (c *Corpus) Compare(other *Corpus, w io.Writer) error {
	bw := bufio.NewWriter(w)

	aExports := c.Exports()
	bExports := other.Exports()
	bSet := make(map[string]bool, len(bExports))
	for _, n := range bExports {
		bSet[n] = true
	}
	aSet := make(map[string]bool, len(aExports))
	for _, n := range aExports {
		aSet[n] = true
	}

	var onlyInA, onlyInB, shared []string
	for _, n := range aExports {
		if bSet[n] {
			shared = append(shared, n)
		} else {
			onlyInA = append(onlyInA, n)
		}
	}
	for _, n := range bExports {
		if !aSet[n] {
			onlyInB = append(onlyInB, n)
		}
	}
	sort.Strings(onlyInA)
	sort.Strings(onlyInB)
	sort.Strings(shared)

	for _, n := range onlyInA {
		fmt.Fprintf(bw, "Export %s is present in A but not in B\n", n)
	}
	for _, n := range onlyInB {
		fmt.Fprintf(bw, "Export %s is present in B but not in A\n", n)
	}

	changes := make(map[string][]change)
	var mu sync.Mutex

	limit := runtime.GOMAXPROCS(0)
	if limit < 1 {
		limit = 1
	}
	if limit > len(shared) {
		limit = len(shared)
	}
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, name := range shared {
		name := name
		g.Go(func() error {
			fa := c.ExportFile(name)
			fb := other.ExportFile(name)
			local := make(map[string][]change)
			c.compareTypes(other, fa, fb, name, make(map[string]bool), local)
			if len(local) == 0 {
				return nil
			}
			mu.Lock()
			mergeChanges(changes, local)
			mu.Unlock()
			return nil
		})
	}
	// Comparison never raises errors for structural mismatches (spec §7);
	// the only possible error here would be a panic on a corpus invariant
	// violation, which is a programmer error and propagates as such.
	_ = g.Wait()

	names := make([]string, 0, len(changes))
	for name := range changes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, ch := range changes[name] {
			fmt.Fprintln(bw, name)
			for _, line := range unifiedDiff(PrettyFormat(ch.a), PrettyFormat(ch.b)) {
				fmt.Fprintln(bw, line)
			}
		}
	}

	return bw.Flush()
}
