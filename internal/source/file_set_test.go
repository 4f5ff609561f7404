package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"rill/internal/source"
)

func TestAddVirtualNormalizes(t *testing.T) {
	fileSet := source.NewFileSet()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("let a = 1;\r\nlet b = 2;\r\n")...)
	id := fileSet.AddVirtual("win.rl", raw)

	file := fileSet.Get(id)
	if file == nil {
		t.Fatalf("Get returned nil for fresh id")
	}
	if string(file.Content) != "let a = 1;\nlet b = 2;\n" {
		t.Fatalf("content not normalized: %q", file.Content)
	}
	if file.Flags&source.FileHadBOM == 0 {
		t.Fatalf("BOM flag not set")
	}
	if file.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatalf("CRLF flag not set")
	}
	if file.Flags&source.FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "disk.rl")
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fileSet.Get(id)
	if file.Flags&source.FileVirtual != 0 {
		t.Fatalf("disk file marked virtual")
	}
	if string(file.Content) != "fn main() {}\n" {
		t.Fatalf("content is %q", file.Content)
	}

	if _, err := fileSet.Load(filepath.Join(dir, "missing.rl")); err == nil {
		t.Fatalf("loading a missing file succeeded")
	}
}

func TestLookupKeepsLatestVersion(t *testing.T) {
	fileSet := source.NewFileSet()
	first := fileSet.AddVirtual("same.rl", []byte("one"))
	second := fileSet.AddVirtual("same.rl", []byte("two"))
	if first == second {
		t.Fatalf("re-adding a path reused its id")
	}
	id, ok := fileSet.Lookup("same.rl")
	if !ok || id != second {
		t.Fatalf("Lookup returned (%v, %t), want latest id", id, ok)
	}
	if fileSet.Len() != 2 {
		t.Fatalf("Len is %d, want 2", fileSet.Len())
	}
}

func TestLineColOf(t *testing.T) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("pos.rl", []byte("ab\ncde\n\nf"))
	file := fileSet.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1}, // a
		{1, 1, 2}, // b
		{2, 1, 3}, // the newline itself
		{3, 2, 1}, // c
		{5, 2, 3}, // e
		{7, 3, 1}, // empty line
		{8, 4, 1}, // f
	}
	for _, tc := range cases {
		got := file.LineColOf(tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Fatalf("offset %d: got %d:%d, want %d:%d",
				tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestSpanOps(t *testing.T) {
	fileSet := source.NewFileSet()
	id := fileSet.AddVirtual("span.rl", []byte("hello world"))
	file := fileSet.Get(id)

	hello := source.Span{File: id, Start: 0, End: 5}
	world := source.Span{File: id, Start: 6, End: 11}

	if got := file.Text(hello); got != "hello" {
		t.Fatalf("Text returned %q", got)
	}
	if got := file.Text(source.Span{File: id + 1, Start: 0, End: 5}); got != "" {
		t.Fatalf("foreign span produced %q", got)
	}

	cover := hello.Cover(world)
	if cover.Start != 0 || cover.End != 11 {
		t.Fatalf("Cover produced %v", cover)
	}
	if !hello.Contains(4) || hello.Contains(5) {
		t.Fatalf("Contains is not half-open")
	}
	if hello.Len() != 5 || hello.Empty() {
		t.Fatalf("Len/Empty broken for %v", hello)
	}
}
