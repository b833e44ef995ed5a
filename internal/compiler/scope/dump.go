package scope

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ObjectView is the serialisable form of an Object used by Dump.
type ObjectView struct {
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"`
	Type    string       `yaml:"type,omitempty"`
	Value   string       `yaml:"value,omitempty"`
	Mode    string       `yaml:"mode,omitempty"`
	Params  []string     `yaml:"params,omitempty"`
	Objects []ObjectView `yaml:"objects,omitempty"`
}

type TableView struct {
	Program *ObjectView  `yaml:"program,omitempty"`
	Globals []ObjectView `yaml:"globals"`
}

func viewOf(obj *Object) ObjectView {
	v := ObjectView{Name: obj.Name, Kind: obj.Kind.String()}
	if obj.Type != nil {
		v.Type = obj.Type.String()
	}
	if obj.Value != nil {
		v.Value = obj.Value.String()
	}
	if obj.Kind == ObjParameter {
		v.Mode = obj.Mode.String()
	}
	if obj.IsRoutine() {
		for _, p := range obj.Params {
			v.Params = append(v.Params, p.Name)
		}
	}
	// a variable's Scope is where it was declared, not a nested block
	if obj.Kind != ObjVariable && obj.Scope != nil {
		for _, child := range obj.Scope.Objects {
			v.Objects = append(v.Objects, viewOf(child))
		}
	}
	return v
}

// View captures the current contents of the table.
func (t *Table) View() TableView {
	var tv TableView
	if t.Program != nil {
		prog := viewOf(t.Program)
		tv.Program = &prog
	}
	for _, obj := range t.Globals {
		tv.Globals = append(tv.Globals, viewOf(obj))
	}
	return tv
}

// Dump writes the table as YAML.
func (t *Table) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.View()); err != nil {
		return fmt.Errorf("failed to encode symbol table: %w", err)
	}
	return enc.Close()
}
