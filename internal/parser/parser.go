package parser

import (
	"context"
	"strconv"

	"fluentkit/internal/ast"
	"fluentkit/internal/diag"
	"fluentkit/internal/lexer"
	"fluentkit/internal/source"
	"fluentkit/internal/token"
	"fluentkit/internal/trace"
)

type Options struct {
	MaxErrors uint // сколько ошибок отдать Reporter; 0 значит без ограничения
	Reporter  diag.Reporter
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	errors   []*Error
	reported uint
}

// Parse разбирает FTL-текст. Никогда не падает: всё, что не удалось
// разобрать, становится Junk, а ошибки возвращаются вторым значением.
func Parse(text string) (*ast.Resource, []*Error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(text)))
	return ParseFile(context.Background(), file, Options{})
}

// ParseFile parses one source file. Errors are also reported to opts.Reporter
// as SYN diagnostics.
func ParseFile(ctx context.Context, file *source.File, opts Options) (*ast.Resource, []*Error) {
	span, _ := trace.StartSpan(ctx, trace.ScopePhase, "parse")
	span.WithExtra("file", file.Path)

	p := &Parser{
		// лексические проблемы репортит парсер, уже с контекстом
		lx:   lexer.New(file, lexer.Options{}),
		file: file,
		opts: opts,
	}
	res := p.parseResource()

	span.WithExtra("entries", strconv.Itoa(len(res.Body)))
	span.End(strconv.Itoa(len(p.errors)) + " errors")
	return res, p.errors
}

// parseResource: основной цикл верхнего уровня.
func (p *Parser) parseResource() *ast.Resource {
	res := &ast.Resource{}
	res.Span = p.span(0, p.eofOffset())

	var pending *ast.Comment // '#'-комментарий, который может прилипнуть к записи
	blank := 0
	flush := func() {
		if pending != nil {
			res.Body = append(res.Body, pending)
			pending = nil
		}
	}

	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			flush()
			return res
		case token.Newline:
			p.lx.Next()
			blank++
			continue
		case token.Junk:
			p.lx.Next()
			flush()
			err := p.errAt(tok, ExpectedCharRange, "a-zA-Z")
			res.Body = append(res.Body, p.junk(tok.Span, err))
			blank = 0
			continue
		}

		start := tok.Span.Start
		entry, err := p.parseEntry()
		if err != nil {
			flush()
			if err.resume <= start {
				err.resume = start + 1
			}
			end := p.lx.SkipToNextEntry(err.resume)
			res.Body = append(res.Body, p.junk(p.span(start, end), err))
			blank = 0
			continue
		}

		if pending != nil {
			// без пустых строк между ними комментарий относится к записи
			attached := false
			if blank == 0 {
				switch e := entry.(type) {
				case *ast.Message:
					e.Comment, attached = pending, true
				case *ast.Term:
					e.Comment, attached = pending, true
				}
			}
			if attached {
				pending = nil
			} else {
				flush()
			}
		}

		if c, ok := entry.(*ast.Comment); ok && c.Kind == ast.CommentRegular {
			pending = c
		} else {
			res.Body = append(res.Body, entry)
		}
		blank = 0
	}
}

func (p *Parser) parseEntry() (ast.Entry, *Error) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Ident:
		return p.parseMessage()
	case tok.Kind == token.Minus:
		return p.parseTerm()
	case tok.Kind.IsCommentSign():
		return p.parseComment()
	}
	p.lx.Next()
	return nil, p.errAt(tok, ExpectedCharRange, "a-zA-Z")
}

// junk оформляет пропущенный текст и регистрирует ошибку.
func (p *Parser) junk(sp source.Span, err *Error) *ast.Junk {
	err.Slice, err.HasSlice = sp, true
	p.record(err)

	j := &ast.Junk{Content: p.file.Text(sp)}
	j.Span = sp
	ann := ast.Annotation{
		Code:    err.Kind.Code().ID(),
		Message: err.Error(),
		Span:    err.Pos,
	}
	if err.Arg != "" {
		ann.Arguments = []string{err.Arg}
	}
	j.Annotations = append(j.Annotations, ann)
	return j
}

func (p *Parser) record(err *Error) {
	p.errors = append(p.errors, err)
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors != 0 && p.reported >= p.opts.MaxErrors {
		return // достигли максимального количества ошибок
	}
	p.reported++
	p.opts.Reporter.Report(err.Kind.Code(), diag.SevError, err.Pos, err.Error(), nil, nil)
}
