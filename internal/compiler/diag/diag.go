// Package diag defines the diagnostics produced while compiling a KPL
// source: the closed set of error kinds, positioned diagnostic values and an
// ordered list that collects them over one pass.
package diag

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// Stage groups error kinds by the compiler stage that detects them.
type Stage int

const (
	StageLexical Stage = iota
	StageSyntactic
	StageSemantic
)

func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical"
	case StageSyntactic:
		return "syntax"
	case StageSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

type Kind int

const (
	// lexical
	EndOfComment Kind = iota
	IdentifierTooLong
	InvalidCharConstant
	InvalidSymbol

	// syntactic
	MissingToken
	InvalidConstant
	InvalidType
	InvalidBasicType
	InvalidParam
	InvalidStatement
	InvalidArguments
	InvalidComparator
	InvalidExpression
	InvalidTerm
	InvalidFactor

	// semantic
	DuplicateIdentifier
	UndeclaredIdentifier
	UndeclaredConstant
	UndeclaredType
	UndeclaredVariable
	UndeclaredFunction
	UndeclaredProcedure
	InvalidLValue
)

type kindInfo struct {
	name    string
	stage   Stage
	message string
}

var kinds = map[Kind]kindInfo{
	EndOfComment:        {"EndOfComment", StageLexical, "End of comment expected!"},
	IdentifierTooLong:   {"IdentifierTooLong", StageLexical, "Identification too long!"},
	InvalidCharConstant: {"InvalidCharConstant", StageLexical, "Invalid const char!"},
	InvalidSymbol:       {"InvalidSymbol", StageLexical, "Invalid symbol!"},

	MissingToken:      {"MissingToken", StageSyntactic, "Missing"},
	InvalidConstant:   {"InvalidConstant", StageSyntactic, "Invalid constant!"},
	InvalidType:       {"InvalidType", StageSyntactic, "Invalid type!"},
	InvalidBasicType:  {"InvalidBasicType", StageSyntactic, "Invalid basic type!"},
	InvalidParam:      {"InvalidParam", StageSyntactic, "Invalid parameter!"},
	InvalidStatement:  {"InvalidStatement", StageSyntactic, "Invalid statement!"},
	InvalidArguments:  {"InvalidArguments", StageSyntactic, "Invalid arguments!"},
	InvalidComparator: {"InvalidComparator", StageSyntactic, "Invalid comparator!"},
	InvalidExpression: {"InvalidExpression", StageSyntactic, "Invalid expression!"},
	InvalidTerm:       {"InvalidTerm", StageSyntactic, "Invalid term!"},
	InvalidFactor:     {"InvalidFactor", StageSyntactic, "Invalid factor!"},

	DuplicateIdentifier:  {"DuplicateIdentifier", StageSemantic, "Duplicate identifier"},
	UndeclaredIdentifier: {"UndeclaredIdentifier", StageSemantic, "Undeclared identifier"},
	UndeclaredConstant:   {"UndeclaredConstant", StageSemantic, "Undeclared constant"},
	UndeclaredType:       {"UndeclaredType", StageSemantic, "Undeclared type"},
	UndeclaredVariable:   {"UndeclaredVariable", StageSemantic, "Undeclared variable"},
	UndeclaredFunction:   {"UndeclaredFunction", StageSemantic, "Undeclared function"},
	UndeclaredProcedure:  {"UndeclaredProcedure", StageSemantic, "Undeclared procedure"},
	InvalidLValue:        {"InvalidLValue", StageSemantic, "Invalid lvalue in assignment"},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Stage() Stage {
	return kinds[k].stage
}

// Diagnostic is one positioned compiler error.
type Diagnostic struct {
	Kind   Kind
	Line   int
	Column int

	Expected token.TokenType // MissingToken only
	Name     string          // offending identifier for semantic kinds
}

// New creates a diagnostic at the given position.
func New(kind Kind, line, column int) *Diagnostic {
	return &Diagnostic{Kind: kind, Line: line, Column: column}
}

// At creates a diagnostic positioned at tok.
func At(kind Kind, tok token.Token) *Diagnostic {
	return New(kind, tok.Line, tok.Column)
}

// Missing creates a MissingToken diagnostic at the token actually found.
func Missing(expected token.TokenType, found token.Token) *Diagnostic {
	d := At(MissingToken, found)
	d.Expected = expected
	return d
}

// Named creates a semantic diagnostic about the identifier in tok.
func Named(kind Kind, tok token.Token) *Diagnostic {
	d := At(kind, tok)
	d.Name = tok.Literal
	return d
}

// Message renders the human readable text without the position.
func (d *Diagnostic) Message() string {
	info := kinds[d.Kind]
	switch {
	case d.Kind == MissingToken:
		return fmt.Sprintf("%s %s", info.message, token.Describe(d.Expected))
	case d.Name != "":
		return fmt.Sprintf("%s: %s", info.message, d.Name)
	case info.stage == StageSemantic:
		return info.message + "!"
	default:
		return info.message
	}
}

// Error implements error using the <line>-<column>: <message> convention.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d-%d: %s", d.Line, d.Column, d.Message())
}

// List collects diagnostics in the order they were reported.
type List struct {
	items []*Diagnostic
}

func (l *List) Add(d *Diagnostic) {
	l.items = append(l.items, d)
}

func (l *List) Items() []*Diagnostic {
	return l.items
}

func (l *List) Len() int {
	return len(l.items)
}

// Count returns how many diagnostics belong to stage.
func (l *List) Count(stage Stage) int {
	n := 0
	for _, d := range l.items {
		if d.Kind.Stage() == stage {
			n++
		}
	}
	return n
}

// HasAt reports whether a diagnostic of stage was already recorded at the
// given position.
func (l *List) HasAt(stage Stage, line, column int) bool {
	for _, d := range l.items {
		if d.Kind.Stage() == stage && d.Line == line && d.Column == column {
			return true
		}
	}
	return false
}

// Err joins every diagnostic into one error, or returns nil for a clean pass.
func (l *List) Err() error {
	if len(l.items) == 0 {
		return nil
	}
	errs := make([]error, len(l.items))
	for i, d := range l.items {
		errs[i] = d
	}
	return errors.Join(errs...)
}
