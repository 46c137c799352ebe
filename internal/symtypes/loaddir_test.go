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
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture %q: %v", path, err)
	}
}

func TestLoadPathDirectoryRecursesAndFiltersExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.symtypes"), "foo int foo ( )\n")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "sub", "b.symtypes"), "bar int bar ( )\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "foo bar baz\n")

	c := NewCorpus()
	if err := c.LoadPath(dir); err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}

	if got, want := len(c.Files()), 2; got != want {
		t.Fatalf("len(Files()) = %d, want %d (non-.symtypes file must be skipped)", got, want)
	}

	exports := c.Exports()
	sort.Strings(exports)
	if got, want := exports, []string{"bar", "foo"}; !equalStrings(got, want) {
		t.Fatalf("Exports() = %v, want %v", got, want)
	}
}

func TestLoadPathSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.symtypes")
	writeFile(t, path, "foo int foo ( )\n")

	c := NewCorpus()
	if err := c.LoadPath(path); err != nil {
		t.Fatalf("LoadPath failed: %v", err)
	}
	if got, want := len(c.Files()), 1; got != want {
		t.Fatalf("len(Files()) = %d, want %d", got, want)
	}
}

func TestLoadPathsParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, string(rune('a'+i))+".symtypes")
		writeFile(t, path, "s#foo struct foo { int a ; }\n"+string(rune('a'+i))+" int "+string(rune('a'+i))+" ( s#foo )\n")
		paths = append(paths, path)
	}

	parallel := NewCorpus()
	if err := parallel.LoadPaths(paths); err != nil {
		t.Fatalf("LoadPaths failed: %v", err)
	}

	sequential := NewCorpus()
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		err = sequential.Load(p, f)
		f.Close()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	parallelOut := writeConsolidatedString(t, parallel)
	sequentialOut := writeConsolidatedString(t, sequential)
	if parallelOut != sequentialOut {
		t.Fatalf("parallel load produced different output than sequential load:\nparallel:\n%s\nsequential:\n%s", parallelOut, sequentialOut)
	}
}

func equalStrings(a, b []string) bool {
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
