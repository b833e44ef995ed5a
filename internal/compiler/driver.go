package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/lexer"
	"github.com/arnavsurve/kplc/internal/compiler/parser"
	"github.com/arnavsurve/kplc/internal/compiler/reader"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// SourceExt is the extension every KPL source file must carry.
const SourceExt = ".kpl"

// Result is the outcome of one compilation pass. The table is left populated
// so callers can inspect or dump it; Clean releases it.
type Result struct {
	Path        string
	Program     *scope.Object
	Table       *scope.Table
	Diagnostics *diag.List
	Stopped     bool
}

// OK reports whether the source was accepted.
func (r *Result) OK() bool {
	return r.Diagnostics.Len() == 0
}

// Compile runs the front end over src. Diagnostics never turn into an error;
// only I/O failures do.
func Compile(src io.Reader, opts parser.Options) *Result {
	l := lexer.NewLexer(reader.New(src), nil)
	p := parser.NewParser(l, scope.NewTable(), opts)
	prog := p.ParseProgram()
	return &Result{
		Program:     prog,
		Table:       p.Table(),
		Diagnostics: p.Diagnostics(),
		Stopped:     p.Stopped(),
	}
}

// CompileFile compiles the source at path.
func CompileFile(path string, opts parser.Options) (*Result, error) {
	if err := validateExtension(path); err != nil {
		return nil, err
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	logger := opts.Logger
	if logger != nil {
		opts.Logger = logger.With(slog.String("file", path))
		opts.Logger.Debug("compiling")
	}

	l := lexer.NewLexer(r, nil)
	p := parser.NewParser(l, scope.NewTable(), opts)
	prog := p.ParseProgram()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	res := &Result{
		Path:        path,
		Program:     prog,
		Table:       p.Table(),
		Diagnostics: p.Diagnostics(),
		Stopped:     p.Stopped(),
	}
	if opts.Logger != nil {
		opts.Logger.Debug("compiled",
			"diagnostics", res.Diagnostics.Len(),
			"lexical", res.Diagnostics.Count(diag.StageLexical),
			"syntactic", res.Diagnostics.Count(diag.StageSyntactic),
			"semantic", res.Diagnostics.Count(diag.StageSemantic),
			"stopped", res.Stopped)
	}
	return res, nil
}

// ScanFile returns every token of the file at path, error tokens included,
// together with the lexical diagnostics.
func ScanFile(path string) ([]token.Token, *diag.List, error) {
	if err := validateExtension(path); err != nil {
		return nil, nil, err
	}

	r, err := reader.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	l := lexer.NewLexer(r, nil)
	toks := l.Tokens()
	if err := r.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return toks, l.Diagnostics(), nil
}

func validateExtension(path string) error {
	if filepath.Ext(path) != SourceExt {
		return fmt.Errorf("source %s must have %s extension", path, SourceExt)
	}
	return nil
}
