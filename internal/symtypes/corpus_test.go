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
)

func TestFilterSortedNamesOrdersNonExportsBeforeExports(t *testing.T) {
	c := NewCorpus()
	mustLoad(t, c, "test.symtypes",
		"s#zzz struct zzz { int a ; }\n"+
			"aaa int aaa ( s#zzz )\n"+
			"zzz int zzz ( s#zzz )\n")

	got := c.filterSortedNames(func(string) bool { return true })
	want := []string{"s#zzz", "aaa", "zzz"}
	if len(got) != len(want) {
		t.Fatalf("filterSortedNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("filterSortedNames = %v, want %v", got, want)
		}
	}
}

func TestFilterSortedNamesPredicate(t *testing.T) {
	c := NewCorpus()
	mustLoad(t, c, "test.symtypes", "s#foo struct foo { int a ; }\nbar int bar ( s#foo )\n")

	got := c.filterSortedNames(isExport)
	if len(got) != 1 || got[0] != "bar" {
		t.Fatalf("filterSortedNames(isExport) = %v, want [bar]", got)
	}
}

func TestExportFileUnknownNameReturnsNil(t *testing.T) {
	c := NewCorpus()
	mustLoad(t, c, "test.symtypes", "foo int foo ( )\n")

	if fr := c.ExportFile("nope"); fr != nil {
		t.Fatalf("ExportFile(unknown) = %v, want nil", fr)
	}
}

func TestVariantCountUnknownNameIsZero(t *testing.T) {
	c := NewCorpus()
	if got := c.variantCount("nope"); got != 0 {
		t.Fatalf("variantCount(unknown) = %d, want 0", got)
	}
}
