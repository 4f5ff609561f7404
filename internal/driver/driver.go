// Package driver wires the front end together for the CLI: load a
// file, parse it, check it, and compute inlay hints.
package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"rill/internal/ast"
	"rill/internal/hints"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/sema"
	"rill/internal/source"
	"rill/internal/token"
)

// Result bundles everything produced for one analyzed file.
type Result struct {
	Path   string
	FileID source.FileID
	File   *source.File
	Tree   *ast.File
	Sema   *sema.Result
	Hints  []hints.Hint
}

// Analyze loads path into the file set and runs the full pipeline.
func Analyze(fileSet *source.FileSet, path string, cfg hints.Config) (*Result, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return analyzeFile(fileSet, path, id, cfg), nil
}

// AnalyzeSource runs the pipeline over in-memory content (tests,
// stdin).
func AnalyzeSource(fileSet *source.FileSet, path, content string, cfg hints.Config) *Result {
	id := fileSet.AddVirtual(path, []byte(content))
	return analyzeFile(fileSet, path, id, cfg)
}

func analyzeFile(fileSet *source.FileSet, path string, id source.FileID, cfg hints.Config) *Result {
	file := fileSet.Get(id)
	tree := parser.ParseFile(file)
	res := sema.Check(tree)
	return &Result{
		Path:   path,
		FileID: id,
		File:   file,
		Tree:   tree,
		Sema:   res,
		Hints:  hints.Compute(file, tree, res, cfg),
	}
}

// TokenizeResult carries the token stream of one file.
type TokenizeResult struct {
	Path   string
	FileID source.FileID
	Tokens []token.Token
}

// Tokenize loads path and returns its significant tokens.
func Tokenize(fileSet *source.FileSet, path string) (*TokenizeResult, error) {
	id, err := fileSet.Load(path)
	if err != nil {
		return nil, err
	}
	return &TokenizeResult{
		Path:   path,
		FileID: id,
		Tokens: lexer.Tokenize(fileSet.Get(id)),
	}, nil
}

// listSourceFiles returns every *.rl file under dir, sorted for a
// deterministic result order.
func listSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every *.rl file under dir. Files are loaded
// serially (the file set is not safe for concurrent writes) and
// checked in parallel; results come back in sorted path order.
func AnalyzeDir(ctx context.Context, dir string, cfg hints.Config, jobs int) (*source.FileSet, []*Result, error) {
	files, err := listSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			return nil, nil, err
		}
		ids[i] = id
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(files))
	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i := range files {
		group.Go(func() error {
			results[i] = analyzeFile(fileSet, files[i], ids[i], cfg)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
