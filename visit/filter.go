package visit

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/vecdoc/svgopt/ir"
)

// Predicate selects elements.
type Predicate func(*ir.Element) bool

// Filtered wraps v so element callbacks only fire where pred holds.
// Non-element callbacks pass through unchanged, and children of
// non-matching elements are still traversed.
func Filtered(v Visitor, pred Predicate) Visitor {
	return &filtered{v: v, pred: pred}
}

type filtered struct {
	v    Visitor
	pred Predicate
}

func (f *filtered) ElementEnter(el, parent *ir.Element) error {
	if !f.pred(el) {
		return nil
	}
	return f.v.ElementEnter(el, parent)
}

func (f *filtered) ElementExit(el, parent *ir.Element) error {
	if !f.pred(el) {
		return nil
	}
	return f.v.ElementExit(el, parent)
}

func (f *filtered) Text(t ir.Text, parent *ir.Element) error {
	return f.v.Text(t, parent)
}

func (f *filtered) Comment(c ir.Comment, parent *ir.Element) error {
	return f.v.Comment(c, parent)
}

func (f *filtered) CData(c ir.CData, parent *ir.Element) error {
	return f.v.CData(c, parent)
}

func (f *filtered) ProcInst(pi ir.ProcInst, parent *ir.Element) error {
	return f.v.ProcInst(pi, parent)
}

func (f *filtered) DocType(d ir.DocType, parent *ir.Element) error {
	return f.v.DocType(d, parent)
}

// ExprPredicate compiles a boolean expression into a Predicate. The
// expression sees the element through name, attr(key), hasattr(key) and
// childcount. A runtime evaluation error makes the predicate false.
func ExprPredicate(src string) (Predicate, error) {
	prg, err := expr.Compile(src, expr.AsBool(), expr.Env(exprEnv(&ir.Element{})))
	if err != nil {
		return nil, fmt.Errorf("predicate %q: %w", src, err)
	}
	return func(el *ir.Element) bool {
		res, err := runExpr(prg, el)
		return err == nil && res
	}, nil
}

func runExpr(prg *vm.Program, el *ir.Element) (bool, error) {
	res, err := expr.Run(prg, exprEnv(el))
	if err != nil {
		return false, err
	}
	b, _ := res.(bool)
	return b, nil
}

func exprEnv(el *ir.Element) map[string]any {
	return map[string]any{
		"name": el.Name,
		"attr": func(key string) string {
			a, _ := el.Attr(key)
			return a
		},
		"hasattr": func(key string) bool {
			return el.HasAttr(key)
		},
		"childcount": len(el.Children),
	}
}
