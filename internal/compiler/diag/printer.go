package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes diagnostics one per line, optionally coloured by stage.
type Printer struct {
	out      io.Writer
	position *color.Color
	stages   map[Stage]*color.Color
}

func NewPrinter(out io.Writer, useColor bool) *Printer {
	p := &Printer{
		out:      out,
		position: color.New(color.Bold),
		stages: map[Stage]*color.Color{
			StageLexical:   color.New(color.FgYellow),
			StageSyntactic: color.New(color.FgRed),
			StageSemantic:  color.New(color.FgMagenta),
		},
	}
	if useColor {
		p.position.EnableColor()
		for _, c := range p.stages {
			c.EnableColor()
		}
	} else {
		p.position.DisableColor()
		for _, c := range p.stages {
			c.DisableColor()
		}
	}
	return p
}

// Print writes d as "<line>-<column>: <message>".
func (p *Printer) Print(d *Diagnostic) error {
	pos := p.position.Sprintf("%d-%d:", d.Line, d.Column)
	msg := p.stages[d.Kind.Stage()].Sprint(d.Message())
	_, err := fmt.Fprintf(p.out, "%s %s\n", pos, msg)
	return err
}

// PrintAll writes every diagnostic of l in order.
func (p *Printer) PrintAll(l *List) error {
	for _, d := range l.Items() {
		if err := p.Print(d); err != nil {
			return err
		}
	}
	return nil
}
