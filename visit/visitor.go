package visit

import "github.com/vecdoc/svgopt/ir"

// Visitor receives one callback per node. Element nodes get paired
// enter and exit calls wrapping their children; all other kinds get a
// single call. parent is nil for nodes in the document prologue or
// epilogue and for the root element.
type Visitor interface {
	ElementEnter(el *ir.Element, parent *ir.Element) error
	ElementExit(el *ir.Element, parent *ir.Element) error
	Text(t ir.Text, parent *ir.Element) error
	Comment(c ir.Comment, parent *ir.Element) error
	CData(c ir.CData, parent *ir.Element) error
	ProcInst(pi ir.ProcInst, parent *ir.Element) error
	DocType(d ir.DocType, parent *ir.Element) error
}

// Base is a no-op Visitor for embedding. Implementations override only
// the callbacks they need.
type Base struct{}

func (Base) ElementEnter(*ir.Element, *ir.Element) error { return nil }
func (Base) ElementExit(*ir.Element, *ir.Element) error  { return nil }
func (Base) Text(ir.Text, *ir.Element) error             { return nil }
func (Base) Comment(ir.Comment, *ir.Element) error       { return nil }
func (Base) CData(ir.CData, *ir.Element) error           { return nil }
func (Base) ProcInst(ir.ProcInst, *ir.Element) error     { return nil }
func (Base) DocType(ir.DocType, *ir.Element) error       { return nil }
