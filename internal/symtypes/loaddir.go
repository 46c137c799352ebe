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
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LoadPath loads path into the corpus. If path names a directory it is
// enumerated recursively for files with a ".symtypes" extension and each is
// loaded, optionally in parallel (see LoadPaths); otherwise path is read
// directly as a single .symtypes stream.
func (c *Corpus) LoadPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return newIOError(fmt.Sprintf("Failed to stat '%s'", path), err)
	}
	if !info.IsDir() {
		return c.loadFile(path)
	}

	paths, err := enumerateSymtypes(path)
	if err != nil {
		return err
	}
	return c.LoadPaths(paths)
}

// enumerateSymtypes recursively finds every "*.symtypes" file under root.
func enumerateSymtypes(root string) ([]string, error) {
	var paths []string
	err := doublestar.GlobWalk(os.DirFS(root), "**/*.symtypes", func(p string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		paths = append(paths, filepath.Join(root, p))
		return nil
	})
	if err != nil {
		return nil, newIOError(fmt.Sprintf("Failed to read directory '%s'", root), err)
	}
	return paths, nil
}

// loadFile opens path and loads it as a single logical input.
func (c *Corpus) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return newIOError(fmt.Sprintf("Failed to open file '%s'", path), err)
	}
	defer f.Close()
	return c.Load(path, f)
}

// LoadPaths loads every path in paths into the corpus. Work is distributed
// across a bounded worker pool (spec §5): the pool size never exceeds the
// number of available CPUs, and the corpus's single mutex keeps interning
// and the combined "append FileRecord, install exports" step atomic, so the
// observable result is identical to loading the same paths sequentially in
// sorted order followed by a deterministic write. The first error
// encountered aborts the remaining work and is returned; the corpus must be
// discarded on error since partial state is not cleaned up.
func (c *Corpus) LoadPaths(paths []string) error {
	limit := runtime.GOMAXPROCS(0)
	if limit < 1 {
		limit = 1
	}
	if limit > len(paths) {
		limit = len(paths)
	}

	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return c.loadFile(path)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logrus.WithField("count", len(paths)).Debug("loaded symtypes files")
	return nil
}
