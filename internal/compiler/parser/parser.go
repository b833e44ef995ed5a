package parser

import (
	"errors"
	"io"
	"log/slog"

	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/lexer"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/semantics"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

type Options struct {
	// Logger receives rule traces at debug level. Nil discards them.
	Logger *slog.Logger

	// FailFast stops at the first syntactic or semantic diagnostic.
	// Lexical errors never stop the scanner.
	FailFast bool

	// MaxErrors stops parsing once this many diagnostics have been
	// collected. Zero means no limit.
	MaxErrors int
}

// bailout unwinds the recursive descent when parsing has to stop early.
type bailout struct{}

// Parser is a predictive recursive-descent parser with one token of
// lookahead. It builds the symbol table as it goes and checks every
// declaration and identifier use inline.
type Parser struct {
	l       *lexer.Lexer
	curTok  token.Token
	peekTok token.Token

	diags   *diag.List
	table   *scope.Table
	checker *semantics.Checker

	log     *slog.Logger
	opts    Options
	stopped bool
}

// NewParser reads the first token from l. Diagnostics from every stage go to
// the lexer's list so they stay in report order.
func NewParser(l *lexer.Lexer, table *scope.Table, opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Parser{
		l:       l,
		diags:   l.Diagnostics(),
		table:   table,
		checker: semantics.NewChecker(table),
		log:     logger,
		opts:    opts,
	}
	p.peekTok = l.NextValidToken()
	return p
}

func (p *Parser) Diagnostics() *diag.List {
	return p.diags
}

func (p *Parser) Table() *scope.Table {
	return p.table
}

// Stopped reports whether parsing ended early because of FailFast or
// MaxErrors.
func (p *Parser) Stopped() bool {
	return p.stopped
}

// Errors returns every diagnostic rendered as "<line>-<column>: <message>".
func (p *Parser) Errors() []string {
	msgs := make([]string, 0, p.diags.Len())
	for _, d := range p.diags.Items() {
		msgs = append(msgs, d.Error())
	}
	return msgs
}

// --- Token Handling ---

func (p *Parser) advance() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextValidToken()
	p.checkLimit()
}

func (p *Parser) peekIs(tt token.TokenType) bool {
	return p.peekTok.Type == tt
}

// expect consumes the lookahead if it has type tt. Otherwise it reports a
// missing token and leaves the lookahead in place.
func (p *Parser) expect(tt token.TokenType) bool {
	if p.peekIs(tt) {
		p.advance()
		return true
	}
	p.report(diag.Missing(tt, p.peekTok))
	return false
}

// expectIdent consumes an identifier and returns it. ok is false when the
// identifier was missing.
func (p *Parser) expectIdent() (ident token.Token, ok bool) {
	if !p.expect(token.TokenIdent) {
		return token.Token{}, false
	}
	return p.curTok, true
}

// skipUntil advances until the lookahead is in follow or syncSet. It does
// NOT consume the target token.
func (p *Parser) skipUntil(follow token.Set) {
	for !follow.Has(p.peekTok.Type) && !syncSet.Has(p.peekTok.Type) {
		p.log.Debug("skipping token", "token", p.peekTok.String())
		p.advance()
	}
}

// invalid reports an unexpected lookahead for a rule and resynchronises on
// the rule's FOLLOW set.
func (p *Parser) invalid(kind diag.Kind, follow token.Set) {
	p.report(diag.At(kind, p.peekTok))
	p.skipUntil(follow)
}

// --- Diagnostics ---

// report records d. Only the first syntactic diagnostic at a position is
// kept, later ones are cascades of the same defect.
func (p *Parser) report(d *diag.Diagnostic) {
	if d.Kind.Stage() == diag.StageSyntactic && p.diags.HasAt(diag.StageSyntactic, d.Line, d.Column) {
		return
	}
	p.diags.Add(d)
	p.log.Debug("diagnostic", "stage", d.Kind.Stage().String(), "kind", d.Kind.String(), "line", d.Line, "column", d.Column)
	if p.opts.FailFast {
		p.stop("fail-fast")
	}
	p.checkLimit()
}

// check reports the diagnostic carried by err and reports whether err was
// nil.
func (p *Parser) check(err error) bool {
	if err == nil {
		return true
	}
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		p.report(d)
	} else {
		p.log.Error("unexpected check failure", "error", err)
	}
	return false
}

func (p *Parser) checkLimit() {
	if p.opts.MaxErrors > 0 && p.diags.Len() >= p.opts.MaxErrors {
		p.stop("error limit reached")
	}
}

func (p *Parser) stop(reason string) {
	p.log.Debug("stopping parse", "reason", reason, "diagnostics", p.diags.Len())
	p.stopped = true
	panic(bailout{})
}

// declare adds obj to the current scope. Callers have already reported a
// failed freshness check, so a rejected declaration is only logged.
func (p *Parser) declare(obj *scope.Object) {
	if err := p.table.Declare(obj); err != nil {
		p.log.Debug("declaration skipped", "error", err)
	}
}

// trace logs entry to a grammar rule; call the returned func on exit.
func (p *Parser) trace(rule string) func() {
	p.log.Debug("parsing "+rule, "line", p.peekTok.Line, "column", p.peekTok.Column)
	return func() {
		p.log.Debug(rule + " parsed")
	}
}

// --- Program ---

// ParseProgram parses a whole compilation unit and returns the program
// object, or nil if parsing stopped before the header was read. The symbol
// table's block cursor is back at nil afterwards, also when parsing stopped
// early.
func (p *Parser) ParseProgram() (prog *scope.Object) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog = p.table.Program
		}
		p.table.CurrentScope = nil
	}()

	defer p.trace("Program")()
	p.expect(token.TokenProgram)
	ident, _ := p.expectIdent()

	prog = p.table.NewProgram(ident.Literal)
	p.table.EnterBlock(prog.Scope)

	p.expect(token.TokenSemicolon)
	p.parseBlock()
	p.expect(token.TokenPeriod)

	p.table.ExitBlock()
	return prog
}
