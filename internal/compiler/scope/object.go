package scope

import (
	"fmt"

	"github.com/arnavsurve/kplc/internal/compiler/symbols"
)

type ObjectKind int

const (
	ObjProgram ObjectKind = iota
	ObjConstant
	ObjType
	ObjVariable
	ObjFunction
	ObjProcedure
	ObjParameter
)

var objectKindNames = [...]string{
	ObjProgram:   "program",
	ObjConstant:  "constant",
	ObjType:      "type",
	ObjVariable:  "variable",
	ObjFunction:  "function",
	ObjProcedure: "procedure",
	ObjParameter: "parameter",
}

func (k ObjectKind) String() string {
	if int(k) >= 0 && int(k) < len(objectKindNames) {
		return objectKindNames[k]
	}
	return fmt.Sprintf("ObjectKind(%d)", int(k))
}

type ParamMode int

const (
	ByValue ParamMode = iota
	ByReference
)

func (m ParamMode) String() string {
	if m == ByReference {
		return "reference"
	}
	return "value"
}

// Object is a declared name. Which fields are meaningful depends on Kind:
//
//	Program            Scope
//	Constant           Value
//	Type               Type (the aliased type)
//	Variable           Type, Scope (declaring scope, not owned)
//	Function           Type (return type), Params, Scope
//	Procedure          Params, Scope
//	Parameter          Type, Mode, Owner
//
// Function and Procedure parameters are owned by the routine's scope; Params
// only references them in declaration order.
type Object struct {
	Name string
	Kind ObjectKind

	Scope  *Scope
	Value  *symbols.ConstantValue
	Type   *symbols.Type
	Params []*Object
	Mode   ParamMode
	Owner  *Object
}

func (o *Object) String() string {
	return fmt.Sprintf("%s %s", o.Kind, o.Name)
}

// IsRoutine reports whether o is a function or a procedure.
func (o *Object) IsRoutine() bool {
	return o.Kind == ObjFunction || o.Kind == ObjProcedure
}

func NewConstant(name string, value *symbols.ConstantValue) *Object {
	return &Object{Name: name, Kind: ObjConstant, Value: value}
}

func NewType(name string, typ *symbols.Type) *Object {
	return &Object{Name: name, Kind: ObjType, Type: typ}
}

func NewParameter(name string, mode ParamMode, typ *symbols.Type, owner *Object) *Object {
	return &Object{Name: name, Kind: ObjParameter, Mode: mode, Type: typ, Owner: owner}
}

// release drops everything o owns and returns the number of objects
// released, o included.
func (o *Object) release() int {
	n := 1
	switch o.Kind {
	case ObjProgram:
		n += o.Scope.release()
	case ObjFunction, ObjProcedure:
		o.Params = nil
		symbols.Release(o.Type)
		n += o.Scope.release()
	case ObjConstant:
		o.Value = nil
	case ObjVariable, ObjType, ObjParameter:
		symbols.Release(o.Type)
		o.Owner = nil
	}
	o.Type = nil
	o.Scope = nil
	return n
}
