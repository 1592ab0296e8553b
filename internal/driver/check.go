package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"fluentkit/internal/ast"
	"fluentkit/internal/diag"
	"fluentkit/internal/parser"
	"fluentkit/internal/source"
	"fluentkit/internal/trace"
)

// CheckOptions configures CheckDir.
type CheckOptions struct {
	MaxDiagnostics int
	Jobs           int // 0: GOMAXPROCS
	Sink           ProgressSink
}

// CheckedFile содержит результат проверки одного файла
type CheckedFile struct {
	Path     string
	FileID   source.FileID
	Resource *ast.Resource // nil, если файл не загрузился
	Bag      *diag.Bag
}

type CheckResult struct {
	FileSet *source.FileSet
	Files   []CheckedFile
}

// Diagnostics merges and sorts the per-file bags.
func (r *CheckResult) Diagnostics() *diag.Bag {
	total := 0
	for _, f := range r.Files {
		total += f.Bag.Len()
	}
	bag := diag.NewBag(total)
	for _, f := range r.Files {
		bag.Merge(f.Bag)
	}
	bag.Sort()
	return bag
}

func (r *CheckResult) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// ListFTLFiles возвращает отсортированный список всех *.ftl файлов в директории
func ListFTLFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".ftl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// CheckDir parses every *.ftl file under dir in parallel, then checks
// references between the files that share a directory: each directory is
// treated as one bundle. dir may also name a single file.
func CheckDir(ctx context.Context, dir string, opts CheckOptions) (*CheckResult, error) {
	span, ctx := trace.StartSpan(ctx, trace.ScopePhase, "check")
	defer span.End("")

	var files []string
	if info, err := os.Stat(dir); err != nil {
		return nil, err
	} else if info.IsDir() {
		if files, err = ListFTLFiles(dir); err != nil {
			return nil, err
		}
	} else {
		files = []string{dir}
		dir = filepath.Dir(dir)
	}
	span.WithExtra("files", fmt.Sprint(len(files)))

	// FileSet не потокобезопасен: грузим всё заранее, парсим параллельно
	fileSet := source.NewFileSetWithBase(dir)
	results := make([]CheckedFile, len(files))
	for i, path := range files {
		results[i] = CheckedFile{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics)}
		emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			results[i].Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+err.Error()))
			emit(opts.Sink, Event{File: path, Stage: StageLoad, Status: StatusError})
			continue
		}
		results[i].FileID = fileID
	}

	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("maxDiagnostics overflow: %w", err)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(min(jobs, len(files)), 1))
	for i := range results {
		if results[i].Bag.HasErrors() {
			continue
		}
		file := fileSet.Get(results[i].FileID)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := &results[i] // индекс i уникален, мьютекс не нужен
			emit(opts.Sink, Event{File: item.Path, Stage: StageParse, Status: StatusWorking})
			res, errs := parser.ParseFile(gctx, file, parser.Options{
				Reporter:  &diag.BagReporter{Bag: item.Bag},
				MaxErrors: maxErrors,
			})
			item.Resource = res
			status := StatusDone
			if len(errs) > 0 {
				status = StatusError
			}
			emit(opts.Sink, Event{File: item.Path, Stage: StageParse, Status: status})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	emit(opts.Sink, Event{Stage: StageCheck, Status: StatusWorking})
	checkReferences(results)
	emit(opts.Sink, Event{Stage: StageCheck, Status: StatusDone})

	return &CheckResult{FileSet: fileSet, Files: results}, nil
}

// checkReferences reports unresolved references and duplicate entries
// within each directory.
func checkReferences(files []CheckedFile) {
	byFile := make(map[source.FileID]*CheckedFile, len(files))
	groups := make(map[string][]*CheckedFile)
	var order []string
	for i := range files {
		f := &files[i]
		if f.Resource == nil {
			continue
		}
		byFile[f.FileID] = f
		d := filepath.Dir(f.Path)
		if _, ok := groups[d]; !ok {
			order = append(order, d)
		}
		groups[d] = append(groups[d], f)
	}

	for _, d := range order {
		group := groups[d]
		resources := make([]*ast.Resource, len(group))
		var ids []string
		for i, f := range group {
			resources[i] = f.Resource
			for _, m := range f.Resource.Messages() {
				ids = append(ids, m.ID.Name)
			}
		}

		for _, ref := range ast.Unresolved(resources...) {
			f, ok := byFile[ref.Span.File]
			if !ok {
				continue
			}
			code := diag.ResUnknownMessage
			switch {
			case ref.Attribute != "":
				code = diag.ResUnknownAttribute
			case ref.Kind == ast.RefTerm:
				code = diag.ResUnknownTerm
			}
			b := diag.ReportWarning(diag.BagReporter{Bag: f.Bag}, code, ref.Span, fmt.Sprintf("Unknown %s: %s", ref.Kind, ref.Key()))
			if ref.From != "" {
				b.WithNote(ref.Span, "referenced from "+ref.From)
			}
			// для ссылки на сообщение без атрибута span совпадает с идентификатором
			if code == diag.ResUnknownMessage {
				if s := Suggest(ref.ID, ids, 1); len(s) > 0 {
					b.WithFix("replace with "+s[0], diag.FixEdit{Span: ref.Span, NewText: s[0]})
				}
			}
			b.Emit()
		}

		seen := make(map[string]source.Span)
		for _, f := range group {
			for _, e := range f.Resource.Body {
				var key string
				var sp source.Span
				switch e := e.(type) {
				case *ast.Message:
					key, sp = e.ID.Name, e.ID.Span
				case *ast.Term:
					key, sp = "-"+e.ID.Name, e.ID.Span
				default:
					continue
				}
				if first, dup := seen[key]; dup {
					diag.ReportWarning(diag.BagReporter{Bag: f.Bag}, diag.ResDuplicateEntry, sp, "Duplicate entry: "+key).
						WithNote(first, "first defined here").
						Emit()
					continue
				}
				seen[key] = sp
			}
		}
	}
}
