package symbols

import (
	"fmt"
	"strings"
)

type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeChar
	TypeArray
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "INTEGER"
	case TypeChar:
		return "CHAR"
	case TypeArray:
		return "ARRAY"
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// Type is a KPL type. An array owns its element type exclusively, so a Type
// is always a tree: never share a node between two owners, Duplicate it.
type Type struct {
	Kind TypeKind
	Size int   // arrays only, fixed at creation
	Elem *Type // arrays only
}

func IntType() *Type {
	return &Type{Kind: TypeInt}
}

func CharType() *Type {
	return &Type{Kind: TypeChar}
}

func ArrayType(size int, elem *Type) *Type {
	return &Type{Kind: TypeArray, Size: size, Elem: elem}
}

// IsBasic reports whether t may be a parameter or function return type.
func (t *Type) IsBasic() bool {
	return t != nil && (t.Kind == TypeInt || t.Kind == TypeChar)
}

// Depth is the number of array levels above the element type.
func (t *Type) Depth() int {
	depth := 0
	for cur := t; cur != nil && cur.Kind == TypeArray; cur = cur.Elem {
		depth++
	}
	return depth
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	var sb strings.Builder
	cur := t
	for cur != nil && cur.Kind == TypeArray {
		fmt.Fprintf(&sb, "ARRAY [%d] OF ", cur.Size)
		cur = cur.Elem
	}
	if cur == nil {
		sb.WriteString("<nil>")
	} else {
		sb.WriteString(cur.Kind.String())
	}
	return sb.String()
}

// Duplicate returns a deep copy of t.
func Duplicate(t *Type) *Type {
	if t == nil {
		return nil
	}
	dup := &Type{Kind: t.Kind}
	if t.Kind == TypeArray {
		dup.Size = t.Size
		dup.Elem = Duplicate(t.Elem)
	}
	return dup
}

// Equal compares two types structurally: arrays are equal when their sizes
// match and their element types are equal.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != TypeArray {
		return true
	}
	return a.Size == b.Size && Equal(a.Elem, b.Elem)
}

// Release detaches every node of t, elements first, and returns how many
// nodes it visited. A released Type must not be used again.
func Release(t *Type) int {
	if t == nil {
		return 0
	}
	n := 1
	if t.Kind == TypeArray {
		n += Release(t.Elem)
		t.Elem = nil
	}
	return n
}
