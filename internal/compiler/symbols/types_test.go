package symbols

import "testing"

func nested(depth int, size int, elem *Type) *Type {
	t := elem
	for i := 0; i < depth; i++ {
		t = ArrayType(size, t)
	}
	return t
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Type
		want bool
	}{
		{"int int", IntType(), IntType(), true},
		{"char char", CharType(), CharType(), true},
		{"int char", IntType(), CharType(), false},
		{"same array", ArrayType(3, IntType()), ArrayType(3, IntType()), true},
		{"different size", ArrayType(3, IntType()), ArrayType(4, IntType()), false},
		{"different element", ArrayType(3, IntType()), ArrayType(3, CharType()), false},
		{"array vs basic", ArrayType(1, IntType()), IntType(), false},
		{"nested equal", nested(3, 2, CharType()), nested(3, 2, CharType()), true},
		{"nested depth differs", nested(3, 2, CharType()), nested(2, 2, CharType()), false},
		{"inner size differs", ArrayType(2, ArrayType(5, IntType())), ArrayType(2, ArrayType(6, IntType())), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%s, %s) expected=%t, got=%t", tt.a, tt.b, tt.want, got)
			}
			if got := Equal(tt.b, tt.a); got != tt.want {
				t.Errorf("Equal is not symmetric for %s and %s", tt.a, tt.b)
			}
			if !Equal(tt.a, tt.a) {
				t.Errorf("Equal is not reflexive for %s", tt.a)
			}
		})
	}
}

func TestEqualDiffersOnSizeForAnyElement(t *testing.T) {
	elems := []*Type{IntType(), CharType(), ArrayType(2, IntType()), nested(4, 7, CharType())}
	for _, elem := range elems {
		for n := 1; n <= 5; n++ {
			for m := 1; m <= 5; m++ {
				a := ArrayType(n, Duplicate(elem))
				b := ArrayType(m, Duplicate(elem))
				if Equal(a, b) != (n == m) {
					t.Errorf("Equal(%s, %s) expected=%t", a, b, n == m)
				}
			}
		}
	}
}

func TestDuplicateIsDeep(t *testing.T) {
	orig := ArrayType(3, ArrayType(4, CharType()))
	dup := Duplicate(orig)

	if !Equal(orig, dup) {
		t.Fatalf("duplicate not equal to original: %s vs %s", orig, dup)
	}
	if dup == orig || dup.Elem == orig.Elem {
		t.Fatalf("duplicate shares nodes with the original")
	}

	Release(orig)
	if dup.Elem == nil || dup.Elem.Elem == nil || dup.Elem.Elem.Kind != TypeChar {
		t.Errorf("releasing the original damaged the duplicate: %s", dup)
	}
}

func TestRelease(t *testing.T) {
	typ := nested(5, 2, IntType())
	if got := Release(typ); got != 6 {
		t.Errorf("expected 6 nodes released, got=%d", got)
	}
	if typ.Elem != nil {
		t.Errorf("expected element detached after release")
	}
	if got := Release(nil); got != 0 {
		t.Errorf("Release(nil) expected=0, got=%d", got)
	}
}

func TestDeepNesting(t *testing.T) {
	const depth = 1000
	a := nested(depth, 2, IntType())
	b := Duplicate(a)

	if a.Depth() != depth || b.Depth() != depth {
		t.Fatalf("expected depth %d, got=%d and %d", depth, a.Depth(), b.Depth())
	}
	if !Equal(a, b) {
		t.Fatalf("deeply nested duplicate should be equal")
	}
	if got := Release(a); got != depth+1 {
		t.Errorf("expected %d nodes released, got=%d", depth+1, got)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  *Type
		want string
	}{
		{IntType(), "INTEGER"},
		{CharType(), "CHAR"},
		{ArrayType(10, IntType()), "ARRAY [10] OF INTEGER"},
		{ArrayType(2, ArrayType(3, CharType())), "ARRAY [2] OF ARRAY [3] OF CHAR"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() expected=%q, got=%q", tt.want, got)
		}
	}
}

func TestConstantValues(t *testing.T) {
	iv := IntValue(-42)
	cv := CharValue('z')

	if iv.String() != "-42" || cv.String() != "'z'" {
		t.Errorf("unexpected renderings %q and %q", iv, cv)
	}
	if !Equal(iv.Type(), IntType()) || !Equal(cv.Type(), CharType()) {
		t.Errorf("value types do not match their kinds")
	}

	dup := iv.Duplicate()
	dup.Int = 7
	if iv.Int != -42 {
		t.Errorf("Duplicate shares storage with the original")
	}
	if !IntType().IsBasic() || ArrayType(1, IntType()).IsBasic() {
		t.Errorf("IsBasic misclassifies types")
	}
}
