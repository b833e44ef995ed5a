package semantics

import (
	"errors"
	"testing"

	"github.com/arnavsurve/kplc/internal/compiler/diag"
	"github.com/arnavsurve/kplc/internal/compiler/scope"
	"github.com/arnavsurve/kplc/internal/compiler/symbols"
	"github.com/arnavsurve/kplc/internal/compiler/token"
)

func ident(name string) token.Token {
	return token.Token{Type: token.TokenIdent, Literal: name, Line: 3, Column: 7}
}

// fixture declares, in program P:
//
//	CONST C = 1; TYPE T = INTEGER; VAR v : INTEGER;
//	FUNCTION F(n : INTEGER) : INTEGER;   (current scope when returned)
//	PROCEDURE Q;                         (declared in P)
func fixture(t *testing.T) (*scope.Table, *Checker, map[string]*scope.Object) {
	t.Helper()
	table := scope.NewTable()
	prog := table.NewProgram("P")
	table.EnterBlock(prog.Scope)

	objs := map[string]*scope.Object{}
	declare := func(obj *scope.Object) {
		t.Helper()
		if err := table.Declare(obj); err != nil {
			t.Fatalf("Declare(%s) error = %v", obj, err)
		}
		objs[obj.Name] = obj
	}

	declare(scope.NewConstant("C", symbols.IntValue(1)))
	declare(scope.NewType("T", symbols.IntType()))
	declare(table.NewVariable("v", symbols.IntType()))

	q := table.NewProcedure("Q")
	declare(q)

	f := table.NewFunction("F")
	f.Type = symbols.IntType()
	declare(f)
	table.EnterBlock(f.Scope)
	declare(scope.NewParameter("n", scope.ByValue, symbols.IntType(), f))

	return table, NewChecker(table), objs
}

func expectKind(t *testing.T, err error, want diag.Kind) {
	t.Helper()
	var d *diag.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("expected %s diagnostic, got=%v", want, err)
	}
	if d.Kind != want {
		t.Errorf("expected kind %s, got=%s", want, d.Kind)
	}
	if d.Line != 3 || d.Column != 7 {
		t.Errorf("expected position 3-7, got=%d-%d", d.Line, d.Column)
	}
}

func TestCheckFreshIdent(t *testing.T) {
	table, c, _ := fixture(t)

	// n is in F's own scope
	expectKind(t, c.CheckFreshIdent(ident("n")), diag.DuplicateIdentifier)

	// v lives in the enclosing program scope, shadowing is allowed
	if err := c.CheckFreshIdent(ident("v")); err != nil {
		t.Errorf("redeclaring an outer name should be allowed, got=%v", err)
	}
	if err := c.CheckFreshIdent(ident("WRITELN")); err != nil {
		t.Errorf("built-in names may be redeclared, got=%v", err)
	}

	table.ExitBlock()
	expectKind(t, c.CheckFreshIdent(ident("v")), diag.DuplicateIdentifier)
	expectKind(t, c.CheckFreshIdent(ident("F")), diag.DuplicateIdentifier)
}

func TestCheckDeclaredKinds(t *testing.T) {
	_, c, objs := fixture(t)

	type check func(token.Token) (*scope.Object, error)
	tests := []struct {
		name       string
		check      check
		ident      string
		undeclared diag.Kind
	}{
		{"constant", c.CheckDeclaredConstant, "C", diag.UndeclaredConstant},
		{"type", c.CheckDeclaredType, "T", diag.UndeclaredType},
		{"variable", c.CheckDeclaredVariable, "v", diag.UndeclaredVariable},
		{"function", c.CheckDeclaredFunction, "F", diag.UndeclaredFunction},
		{"procedure", c.CheckDeclaredProcedure, "Q", diag.UndeclaredProcedure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := tt.check(ident(tt.ident))
			if err != nil {
				t.Fatalf("expected %s to be found, got=%v", tt.ident, err)
			}
			if obj != objs[tt.ident] {
				t.Errorf("expected %s, got=%v", objs[tt.ident], obj)
			}

			_, err = tt.check(ident("missing"))
			expectKind(t, err, tt.undeclared)

			// right name, wrong kind
			wrong := "C"
			if tt.ident == "C" {
				wrong = "v"
			}
			_, err = tt.check(ident(wrong))
			expectKind(t, err, tt.undeclared)
		})
	}
}

func TestCheckDeclaredBuiltins(t *testing.T) {
	_, c, _ := fixture(t)

	if _, err := c.CheckDeclaredFunction(ident("READI")); err != nil {
		t.Errorf("READI should be a declared function, got=%v", err)
	}
	if _, err := c.CheckDeclaredProcedure(ident("WRITEI")); err != nil {
		t.Errorf("WRITEI should be a declared procedure, got=%v", err)
	}
	_, err := c.CheckDeclaredProcedure(ident("READC"))
	expectKind(t, err, diag.UndeclaredProcedure)
}

func TestCheckDeclaredIdent(t *testing.T) {
	_, c, objs := fixture(t)

	obj, err := c.CheckDeclaredIdent(ident("v"))
	if err != nil || obj != objs["v"] {
		t.Errorf("expected v from the outer scope, got=%v, %v", obj, err)
	}
	_, err = c.CheckDeclaredIdent(ident("nothere"))
	expectKind(t, err, diag.UndeclaredIdentifier)

	var d *diag.Diagnostic
	errors.As(err, &d)
	if d.Error() != "3-7: Undeclared identifier: nothere" {
		t.Errorf("unexpected message %q", d.Error())
	}
}

func TestCheckDeclaredLValueIdent(t *testing.T) {
	table, c, objs := fixture(t)

	for _, name := range []string{"v", "n", "F"} {
		obj, err := c.CheckDeclaredLValueIdent(ident(name))
		if err != nil {
			t.Errorf("%s should be assignable inside F, got=%v", name, err)
		}
		if obj != objs[name] {
			t.Errorf("expected %s, got=%v", objs[name], obj)
		}
	}

	for _, name := range []string{"C", "T", "Q", "READI"} {
		_, err := c.CheckDeclaredLValueIdent(ident(name))
		expectKind(t, err, diag.InvalidLValue)
	}

	_, err := c.CheckDeclaredLValueIdent(ident("ghost"))
	expectKind(t, err, diag.UndeclaredIdentifier)

	// F's name is not assignable from the program body
	table.ExitBlock()
	_, err = c.CheckDeclaredLValueIdent(ident("F"))
	expectKind(t, err, diag.InvalidLValue)
}

func TestLValueNotAllowedFromNestedRoutine(t *testing.T) {
	table, c, objs := fixture(t)

	inner := table.NewProcedure("Inner")
	if err := table.Declare(inner); err != nil {
		t.Fatalf("Declare() error = %v", err)
	}
	table.EnterBlock(inner.Scope)
	defer table.ExitBlock()

	if _, err := c.CheckDeclaredIdent(ident("F")); err != nil {
		t.Fatalf("F should be visible inside Inner, got=%v", err)
	}
	obj, err := c.CheckDeclaredLValueIdent(ident("F"))
	expectKind(t, err, diag.InvalidLValue)
	if obj != objs["F"] {
		t.Errorf("expected the offending object to be returned")
	}
}
