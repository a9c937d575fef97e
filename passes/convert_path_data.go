package passes

import (
	"encoding/json"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/pathdata"
)

func init() {
	pass.Register(func() pass.Pass {
		return &convertPathData{
			Precision:        3,
			RemoveRedundant:  true,
			StraightenCurves: true,
		}
	})
}

// convertPathData reparses and reserializes d attributes through the
// path engine, applying the enabled geometric simplifications. The
// rewritten value is only kept when it is no longer than the original.
type convertPathData struct {
	Precision        int     `json:"precision"`
	Tolerance        float64 `json:"tolerance"`
	RemoveRedundant  bool    `json:"removeRedundant"`
	StraightenCurves bool    `json:"straightenCurves"`
	FitArcs          bool    `json:"fitArcs"`
	SpaceSep         bool    `json:"spaceSep"`
}

func (p *convertPathData) Name() string            { return "convertPathData" }
func (p *convertPathData) Category() pass.Category { return pass.Element }

func (p *convertPathData) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, p)
}

func (p *convertPathData) Apply(doc *ir.Document) (bool, error) {
	return pass.ApplyVisitor(doc, p)
}

var pathDataAttrs = map[string]string{
	"path":  "d",
	"glyph": "d",
}

func (p *convertPathData) VisitElement(el, _ *ir.Element) (bool, error) {
	attr, ok := pathDataAttrs[el.Name]
	if !ok {
		return false, nil
	}
	d, ok := el.Attr(attr)
	if !ok || d == "" {
		return false, nil
	}
	cmds, err := pathdata.Parse(d)
	if err != nil {
		// malformed path data is left for the renderer to reject
		return false, nil
	}
	cmds = pathdata.Simplify(cmds, pathdata.SimplifyOpts{
		Tolerance:        p.Tolerance,
		RemoveRedundant:  p.RemoveRedundant,
		StraightenCurves: p.StraightenCurves,
		FitArcs:          p.FitArcs,
	})
	out := pathdata.Stringify(cmds, pathdata.StringifyOpts{
		Precision: p.Precision,
		SpaceSep:  p.SpaceSep,
	})
	if len(out) > len(d) || out == d {
		return false, nil
	}
	el.SetAttr(attr, out)
	return true, nil
}
