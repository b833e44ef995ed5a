// Package semantics holds the declaration checks the parser runs while it
// recognises declarations and identifier uses.
package semantics

import (
	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

// Checker validates identifiers against the table's current scope. Failed
// checks return a *diag.Diagnostic positioned at the identifier.
type Checker struct {
	table *scope.Table
}

func NewChecker(table *scope.Table) *Checker {
	return &Checker{table: table}
}

// CheckFreshIdent fails if ident is already declared in the current scope
// itself. Names from enclosing scopes may be redeclared.
func (c *Checker) CheckFreshIdent(ident token.Token) error {
	if c.table.CurrentScope == nil {
		return nil
	}
	if c.table.CurrentScope.LookupCurrentScope(ident.Literal) != nil {
		return diag.Named(diag.DuplicateIdentifier, ident)
	}
	return nil
}

func (c *Checker) CheckDeclaredIdent(ident token.Token) (*scope.Object, error) {
	obj := c.table.Lookup(ident.Literal)
	if obj == nil {
		return nil, diag.Named(diag.UndeclaredIdentifier, ident)
	}
	return obj, nil
}

func (c *Checker) checkDeclaredKind(ident token.Token, kind scope.ObjectKind, undeclared diag.Kind) (*scope.Object, error) {
	obj := c.table.Lookup(ident.Literal)
	if obj == nil || obj.Kind != kind {
		return obj, diag.Named(undeclared, ident)
	}
	return obj, nil
}

func (c *Checker) CheckDeclaredConstant(ident token.Token) (*scope.Object, error) {
	return c.checkDeclaredKind(ident, scope.ObjConstant, diag.UndeclaredConstant)
}

func (c *Checker) CheckDeclaredType(ident token.Token) (*scope.Object, error) {
	return c.checkDeclaredKind(ident, scope.ObjType, diag.UndeclaredType)
}

func (c *Checker) CheckDeclaredVariable(ident token.Token) (*scope.Object, error) {
	return c.checkDeclaredKind(ident, scope.ObjVariable, diag.UndeclaredVariable)
}

func (c *Checker) CheckDeclaredFunction(ident token.Token) (*scope.Object, error) {
	return c.checkDeclaredKind(ident, scope.ObjFunction, diag.UndeclaredFunction)
}

func (c *Checker) CheckDeclaredProcedure(ident token.Token) (*scope.Object, error) {
	return c.checkDeclaredKind(ident, scope.ObjProcedure, diag.UndeclaredProcedure)
}

// CheckDeclaredLValueIdent accepts variables and parameters, and a function's
// own name inside that function's body (assigning the return value).
func (c *Checker) CheckDeclaredLValueIdent(ident token.Token) (*scope.Object, error) {
	obj := c.table.Lookup(ident.Literal)
	switch {
	case obj == nil:
		return nil, diag.Named(diag.UndeclaredIdentifier, ident)
	case obj.Kind == scope.ObjVariable, obj.Kind == scope.ObjParameter:
		return obj, nil
	case obj.Kind == scope.ObjFunction && c.table.CurrentScope != nil && c.table.CurrentScope.Owner == obj:
		return obj, nil
	}
	return obj, diag.Named(diag.InvalidLValue, ident)
}
