package driver

import (
	"context"

	"fortio.org/safecast"

	"fluentkit/internal/ast"
	"fluentkit/internal/diag"
	"fluentkit/internal/parser"
	"fluentkit/internal/source"
)

type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Resource *ast.Resource
	Errors   []*parser.Error
	Bag      *diag.Bag
}

// Parse parses the file at path. Syntax errors end up in Bag as SYN
// diagnostics; only I/O problems are returned as error.
func Parse(ctx context.Context, path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseFile(ctx, fs, fs.Get(fileID), maxDiagnostics)
}

// ParseSource parses in-memory text registered under name.
func ParseSource(ctx context.Context, name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), maxDiagnostics)
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) (*ParseResult, error) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}
	res, errs := parser.ParseFile(ctx, file, opts)

	return &ParseResult{
		FileSet:  fs,
		File:     file,
		Resource: res,
		Errors:   errs,
		Bag:      bag,
	}, nil
}
