package passes

import (
	"encoding/json"
	"regexp"
	"strconv"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/pathdata"
)

func init() {
	pass.Register(func() pass.Pass {
		return &cleanupNumericValues{Precision: 3, RemovePx: true}
	})
}

// cleanupNumericValues rounds plain numeric attribute values, strips
// leading zeros and drops the default px unit.
type cleanupNumericValues struct {
	Precision int  `json:"precision"`
	RemovePx  bool `json:"removePx"`
}

func (p *cleanupNumericValues) Name() string            { return "cleanupNumericValues" }
func (p *cleanupNumericValues) Category() pass.Category { return pass.Element }

func (p *cleanupNumericValues) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, p)
}

func (p *cleanupNumericValues) Apply(doc *ir.Document) (bool, error) {
	return pass.ApplyVisitor(doc, p)
}

// numericValueRe matches a single number with an optional unit.
var numericValueRe = regexp.MustCompile(`^([-+]?(?:\d*\.\d+|\d+\.?)(?:[eE][-+]?\d+)?)(px|pt|pc|mm|cm|in|em|ex|%)?$`)

// numericAttrs never carry list values, so a whole-value rewrite is safe.
var numericAttrs = map[string]bool{
	"cx": true, "cy": true, "dx": true, "dy": true,
	"fx": true, "fy": true, "height": true, "offset": true,
	"opacity": true, "fill-opacity": true, "stroke-opacity": true,
	"r": true, "rx": true, "ry": true, "stroke-width": true,
	"width": true, "x": true, "x1": true, "x2": true,
	"y": true, "y1": true, "y2": true,
}

func (p *cleanupNumericValues) VisitElement(el, _ *ir.Element) (bool, error) {
	changed := false
	for i, a := range el.Attrs {
		if !numericAttrs[a.Name] {
			continue
		}
		m := numericValueRe.FindStringSubmatch(a.Value)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := m[2]
		if unit == "px" && p.RemovePx {
			unit = ""
		}
		out := pathdata.FormatNumber(v, p.Precision) + unit
		if out != a.Value {
			el.Attrs[i].Value = out
			changed = true
		}
	}
	return changed, nil
}
