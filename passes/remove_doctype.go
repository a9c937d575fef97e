package passes

import (
	"encoding/json"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/visit"
)

func init() {
	pass.Register(func() pass.Pass { return &removeDoctype{} })
}

// removeDoctype drops the DOCTYPE declaration. Entity definitions have
// already been expanded during parsing, so the declaration carries no
// information the renderer needs.
type removeDoctype struct{}

func (p *removeDoctype) Name() string            { return "removeDoctype" }
func (p *removeDoctype) Category() pass.Category { return pass.Global }

func (p *removeDoctype) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, &struct{}{})
}

func (p *removeDoctype) Apply(doc *ir.Document) (bool, error) {
	v := &doctypeDropper{}
	if err := visit.Walk(doc, v); err != nil {
		return v.changed, err
	}
	return v.changed, nil
}

type doctypeDropper struct {
	visit.Base
	changed bool
}

func (v *doctypeDropper) DocType(ir.DocType, *ir.Element) error {
	v.changed = true
	return visit.Remove
}
