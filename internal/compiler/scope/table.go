package scope

import (
	"errors"
	"fmt"

	"github.com/arnavsurve/kplc/internal/compiler/symbols"
)

var ErrNoScope = errors.New("no block is open")

// Table is the symbol table of one compilation.
type Table struct {
	Program      *Object
	Globals      []*Object
	CurrentScope *Scope

	// Shared basic types. Objects never own these; they get duplicates.
	Int  *symbols.Type
	Char *symbols.Type
}

// NewTable returns a table with the built-in routines declared.
func NewTable() *Table {
	t := &Table{
		Int:  symbols.IntType(),
		Char: symbols.CharType(),
	}

	readc := t.NewFunction("READC")
	readc.Type = symbols.Duplicate(t.Char)
	readi := t.NewFunction("READI")
	readi.Type = symbols.Duplicate(t.Int)

	writei := t.NewProcedure("WRITEI")
	t.addBuiltinParam(writei, "i", symbols.Duplicate(t.Int))
	writec := t.NewProcedure("WRITEC")
	t.addBuiltinParam(writec, "ch", symbols.Duplicate(t.Char))
	writeln := t.NewProcedure("WRITELN")

	t.Globals = []*Object{readc, readi, writei, writec, writeln}
	return t
}

func (t *Table) addBuiltinParam(routine *Object, name string, typ *symbols.Type) {
	param := NewParameter(name, ByValue, typ, routine)
	routine.Scope.Objects = append(routine.Scope.Objects, param)
	routine.Params = append(routine.Params, param)
}

// NewProgram creates the root object with its scope and records it as the
// table's program.
func (t *Table) NewProgram(name string) *Object {
	prog := &Object{Name: name, Kind: ObjProgram}
	prog.Scope = NewScope(prog, nil)
	t.Program = prog
	return prog
}

// NewVariable creates a variable belonging to the current scope.
func (t *Table) NewVariable(name string, typ *symbols.Type) *Object {
	return &Object{Name: name, Kind: ObjVariable, Type: typ, Scope: t.CurrentScope}
}

// NewFunction creates a function whose scope is nested in the current one.
// The return type is set once it has been parsed.
func (t *Table) NewFunction(name string) *Object {
	fn := &Object{Name: name, Kind: ObjFunction}
	fn.Scope = NewScope(fn, t.CurrentScope)
	return fn
}

func (t *Table) NewProcedure(name string) *Object {
	proc := &Object{Name: name, Kind: ObjProcedure}
	proc.Scope = NewScope(proc, t.CurrentScope)
	return proc
}

// Declare adds obj to the current scope. A parameter is also appended to its
// owner's parameter list; both refer to the same object.
func (t *Table) Declare(obj *Object) error {
	if t.CurrentScope == nil {
		return fmt.Errorf("declare %s: %w", obj, ErrNoScope)
	}
	if err := t.CurrentScope.Define(obj); err != nil {
		return fmt.Errorf("declare %s: %w", obj, err)
	}
	if obj.Kind == ObjParameter && obj.Owner != nil {
		obj.Owner.Params = append(obj.Owner.Params, obj)
	}
	return nil
}

// Lookup resolves name from the current scope outwards, then among the
// built-ins. Inner declarations hide outer ones.
func (t *Table) Lookup(name string) *Object {
	if t.CurrentScope != nil {
		if obj := t.CurrentScope.Lookup(name); obj != nil {
			return obj
		}
	}
	for _, obj := range t.Globals {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// EnterBlock makes s the current scope. Every EnterBlock is paired with
// exactly one ExitBlock.
func (t *Table) EnterBlock(s *Scope) {
	t.CurrentScope = s
}

// ExitBlock restores the scope enclosing the current one.
func (t *Table) ExitBlock() {
	if t.CurrentScope != nil {
		t.CurrentScope = t.CurrentScope.Outer
	}
}

// Clean releases the program tree and then the built-ins, returning the
// number of objects released. Each object is released exactly once.
func (t *Table) Clean() int {
	n := 0
	if t.Program != nil {
		n += t.Program.release()
		t.Program = nil
	}
	for _, obj := range t.Globals {
		n += obj.release()
	}
	t.Globals = nil
	t.CurrentScope = nil
	t.Int = nil
	t.Char = nil
	return n
}
