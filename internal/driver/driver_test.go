package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rill/internal/driver"
	"rill/internal/hints"
	"rill/internal/source"
	"rill/internal/token"
)

func TestAnalyzeSource(t *testing.T) {
	fileSet := source.NewFileSet()
	res := driver.AnalyzeSource(fileSet, "mem.rl", `
fn main() {
    let test = 33;
}
`, hints.DefaultConfig())

	if res.Tree == nil || res.Sema == nil {
		t.Fatalf("pipeline produced %+v", res)
	}
	if len(res.Hints) != 1 {
		t.Fatalf("got %d hints, want 1: %v", len(res.Hints), res.Hints)
	}
	h := res.Hints[0]
	if h.Kind != hints.TypeHint || h.Label != "i32" || res.File.Text(h.Range) != "test" {
		t.Fatalf("hint is (%q, %s, %q)", res.File.Text(h.Range), h.Kind, h.Label)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tok.rl")
	if err := os.WriteFile(path, []byte("let x = 1;"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fileSet := source.NewFileSet()
	res, err := driver.Tokenize(fileSet, path)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []token.Kind{
		token.KwLet, token.Ident, token.Assign, token.IntLit,
		token.Semicolon, token.EOF,
	}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, k := range want {
		if res.Tokens[i].Kind != k {
			t.Fatalf("token %d is %s, want %s", i, res.Tokens[i].Kind, k)
		}
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("b.rl", "fn b() { let flag = true; }\n")
	write("a.rl", "fn a() { let n = 1; }\n")
	write("notes.txt", "ignored\n")

	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	write(filepath.Join("sub", "c.rl"), "fn c() { let ch = 'x'; }\n")

	fileSet, results, err := driver.AnalyzeDir(context.Background(), dir, hints.DefaultConfig(), 2)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if fileSet.Len() != 3 || len(results) != 3 {
		t.Fatalf("analyzed %d files, %d results", fileSet.Len(), len(results))
	}

	// sorted path order, non-source files skipped
	wantLabels := []string{"i32", "bool", "char"}
	wantNames := []string{"a.rl", "b.rl", "c.rl"}
	for i, res := range results {
		if filepath.Base(res.Path) != wantNames[i] {
			t.Fatalf("result %d is %s, want %s", i, res.Path, wantNames[i])
		}
		if len(res.Hints) != 1 || res.Hints[0].Label != wantLabels[i] {
			t.Fatalf("%s produced hints %v", res.Path, res.Hints)
		}
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	dir := t.TempDir()
	fileSet, results, err := driver.AnalyzeDir(context.Background(), dir, hints.DefaultConfig(), 0)
	if err != nil {
		t.Fatalf("AnalyzeDir: %v", err)
	}
	if fileSet.Len() != 0 || len(results) != 0 {
		t.Fatalf("empty dir produced %d files, %d results", fileSet.Len(), len(results))
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	fileSet := source.NewFileSet()
	if _, err := driver.Analyze(fileSet, filepath.Join(t.TempDir(), "nope.rl"), hints.DefaultConfig()); err == nil {
		t.Fatalf("analyzing a missing file succeeded")
	}
}
