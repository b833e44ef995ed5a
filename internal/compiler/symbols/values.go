package symbols

import "fmt"

// ConstantValue is the resolved value of a CONST declaration.
type ConstantValue struct {
	Kind TypeKind // TypeInt or TypeChar
	Int  int
	Char byte
}

func IntValue(v int) *ConstantValue {
	return &ConstantValue{Kind: TypeInt, Int: v}
}

func CharValue(c byte) *ConstantValue {
	return &ConstantValue{Kind: TypeChar, Char: c}
}

func (v *ConstantValue) Duplicate() *ConstantValue {
	if v == nil {
		return nil
	}
	dup := *v
	return &dup
}

// Type returns a fresh Type matching the value.
func (v *ConstantValue) Type() *Type {
	if v.Kind == TypeChar {
		return CharType()
	}
	return IntType()
}

func (v *ConstantValue) String() string {
	if v == nil {
		return "<nil>"
	}
	if v.Kind == TypeChar {
		return fmt.Sprintf("'%c'", v.Char)
	}
	return fmt.Sprintf("%d", v.Int)
}
