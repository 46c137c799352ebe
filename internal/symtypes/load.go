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
	"strings"

	"github.com/sirupsen/logrus"
)

// pendingFileRecord is a parsed but not-yet-resolved "F#" line, kept until
// the whole stream's type records have been scanned (the two-pass rule of
// spec §9).
type pendingFileRecord struct {
	line     int
	filename string
	refs     []string // each a bare "<name>" or tagged "<name>@<tag>"
}

// readLines splits r into text lines, stripping the trailing newline of
// each. It does not synthesize a trailing empty line for input that ends in
// "\n", matching how a line-oriented reader is normally used.
func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Load parses one .symtypes stream (single-file or consolidated) and
// appends the input it describes to the corpus. path is used only for
// error messages and, for a single-file input, as the resulting file's
// path.
func (c *Corpus) Load(path string, r io.Reader) error {
	lines, err := readLines(r)
	if err != nil {
		return newIOError(fmt.Sprintf("Failed to read data from file '%s'", path), err)
	}

	consolidated := false
	for _, line := range lines {
		if strings.HasPrefix(line, "F#") {
			consolidated = true
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	logrus.WithFields(logrus.Fields{"path": path, "consolidated": consolidated}).Debug("loading symtypes stream")

	if consolidated {
		return c.loadConsolidatedLocked(path, lines)
	}
	return c.loadSingleLocked(path, lines)
}

// loadSingleLocked implements spec §4.3 for a plain, non-consolidated
// stream: every line becomes a direct entry of the single FileRecord built
// for this call. Callers must hold c.mu.
func (c *Corpus) loadSingleLocked(path string, lines []string) error {
	fr := newFileRecord(path)
	fileIdx := len(c.files)

	for i, line := range lines {
		lineNo := i + 1
		if line == "" {
			// A genuinely empty line between records is permitted.
			continue
		}
		name, toks := tokenize(line)
		if name == "" {
			return newParseError(path, lineNo, "Expected a record name")
		}
		if _, _, hasTag := splitTag(name); hasTag {
			return newParseError(path, lineNo, "Unexpected variant tag in '%s'", name)
		}
		if _, dup := fr.entries[name]; dup {
			return newParseError(path, lineNo, "Duplicate record '%s'", name)
		}

		idx := c.intern(name, toks)
		fr.entries[name] = idx

		if isExport(name) {
			c.recordExportLocked(name, fileIdx)
		}
	}

	c.files = append(c.files, fr)
	return nil
}

// recordExportLocked installs name as defined by the file at fileIdx,
// warning when it overwrites a different file's definition of the same
// export (spec's last-writer-wins rule is kept; the overwrite is still a
// candidate diagnostic worth surfacing, per Open Question 1). Callers must
// hold c.mu.
func (c *Corpus) recordExportLocked(name string, fileIdx int) {
	if prev, ok := c.exports[name]; ok && prev != fileIdx {
		logrus.WithFields(logrus.Fields{
			"export":   name,
			"old_file": c.files[prev].Path,
		}).Warn("export redefined in a later file, keeping the last definition")
	}
	c.exports[name] = fileIdx
}

// loadConsolidatedLocked implements spec §4.3 for a consolidated stream:
// type records (possibly tagged "<name>@<tag>") are interned first, then
// each "F#<filename>" line is resolved against the accumulated remap into
// its own FileRecord, with implicit references expanded. Callers must hold
// c.mu.
func (c *Corpus) loadConsolidatedLocked(path string, lines []string) error {
	// remap[base][tag] = internal variant index, built from every type
	// record line in this stream before any F# line is resolved.
	remap := make(map[string]map[string]int)
	seenFilenames := make(map[string]bool)
	var pending []pendingFileRecord

	for i, line := range lines {
		lineNo := i + 1

		if line == "" {
			// A genuinely empty line between records is permitted.
			continue
		}

		if strings.HasPrefix(line, "F#") {
			words := strings.Fields(line)
			// words[0] is "F#<filename>"; it always has at least 2 bytes.
			filename := words[0][2:]
			if seenFilenames[filename] {
				return newParseError(path, lineNo, "Duplicate record '%s'", words[0])
			}
			seenFilenames[filename] = true
			pending = append(pending, pendingFileRecord{line: lineNo, filename: filename, refs: words[1:]})
			continue
		}

		name, toks := tokenize(line)
		if name == "" {
			return newParseError(path, lineNo, "Expected a record name")
		}
		base, tag, _ := splitTag(name)

		m := remap[base]
		if m == nil {
			m = make(map[string]int)
			remap[base] = m
		}
		if _, dup := m[tag]; dup {
			return newParseError(path, lineNo, "Duplicate record '%s'", name)
		}

		idx := c.intern(base, toks)
		m[tag] = idx
	}

	for _, pfr := range pending {
		fr := newFileRecord(pfr.filename)
		fileIdx := len(c.files)

		for _, ref := range pfr.refs {
			base, tag, _ := splitTag(ref)
			m, ok := remap[base]
			if !ok {
				return newParseError(path, pfr.line, "Type %s is not known", ref)
			}
			idx, ok := m[tag]
			if !ok {
				return newParseError(path, pfr.line, "Type %s is not known", ref)
			}
			fr.entries[base] = idx
			if isExport(base) {
				c.recordExportLocked(base, fileIdx)
			}
		}

		if err := c.expandImplicitRefs(path, pfr.line, fr, fileIdx); err != nil {
			return err
		}

		c.files = append(c.files, fr)
	}

	return nil
}

// expandImplicitRefs walks every TypeRef transitively reachable from fr's
// explicit entries and adds any name not already present, per spec §4.3.
// Each implicitly-added name must have exactly one variant corpus-wide at
// this moment; that variant (index 0) is the one recorded.
func (c *Corpus) expandImplicitRefs(path string, line int, fr *FileRecord, fileIdx int) error {
	queue := fr.Names()
	for len(queue) > 0 {
		name := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		idx, ok := fr.entries[name]
		if !ok {
			// Unreachable: name came from fr.entries or was just inserted below.
			panic(fmt.Sprintf("implicit expansion lost track of %q", name))
		}
		vl := c.variantsOf(name)
		if vl == nil {
			panic(fmt.Sprintf("type %q has a missing declaration", name))
		}
		for _, tok := range vl.at(idx) {
			if tok.Kind != TypeRef {
				continue
			}
			ref := tok.Text
			if _, already := fr.entries[ref]; already {
				continue
			}
			switch c.variantCount(ref) {
			case 1:
				// Falls through to recording the implicit reference below.
			case 0:
				return newParseError(path, line, "Type %s is not known", ref)
			default:
				return newParseError(path, line, "Type %s is implicitly referenced but has multiple variants", ref)
			}
			fr.entries[ref] = 0
			if isExport(ref) {
				c.recordExportLocked(ref, fileIdx)
			}
			queue = append(queue, ref)
		}
	}
	return nil
}
