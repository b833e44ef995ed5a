package scope

import (
	"fmt"
	"slices"
)

// Scope is one block's declarations. Objects keep declaration order and are
// looked up linearly.
type Scope struct {
	Owner   *Object
	Outer   *Scope
	Objects []*Object
}

func NewScope(owner *Object, outer *Scope) *Scope {
	return &Scope{
		Owner: owner,
		Outer: outer,
	}
}

// Define adds obj to this scope level only.
// It returns an error if the name is already declared at this level.
func (s *Scope) Define(obj *Object) error {
	if s.LookupCurrentScope(obj.Name) != nil {
		return fmt.Errorf("%q already declared in this scope", obj.Name)
	}
	s.Objects = append(s.Objects, obj)
	return nil
}

// Lookup searches this scope, then each enclosing scope outwards.
func (s *Scope) Lookup(name string) *Object {
	for scope := s; scope != nil; scope = scope.Outer {
		if obj := scope.LookupCurrentScope(name); obj != nil {
			return obj
		}
	}
	return nil
}

// LookupCurrentScope checks ONLY the current scope level.
func (s *Scope) LookupCurrentScope(name string) *Object {
	i := slices.IndexFunc(s.Objects, func(o *Object) bool { return o.Name == name })
	if i < 0 {
		return nil
	}
	return s.Objects[i]
}

// Depth is the number of enclosing scopes.
func (s *Scope) Depth() int {
	depth := 0
	for scope := s.Outer; scope != nil; scope = scope.Outer {
		depth++
	}
	return depth
}

func (s *Scope) release() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, obj := range s.Objects {
		n += obj.release()
	}
	s.Objects = nil
	s.Owner = nil
	s.Outer = nil
	return n
}
