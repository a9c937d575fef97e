package passes

import (
	"encoding/json"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/visit"
)

func init() {
	pass.Register(func() pass.Pass { return &removeMetadata{} })
}

// removeMetadata drops metadata elements and their subtrees.
type removeMetadata struct{}

func (p *removeMetadata) Name() string            { return "removeMetadata" }
func (p *removeMetadata) Category() pass.Category { return pass.Element }

func (p *removeMetadata) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, &struct{}{})
}

func (p *removeMetadata) Apply(doc *ir.Document) (bool, error) {
	return pass.ApplyVisitor(doc, p)
}

func (p *removeMetadata) VisitElement(el, parent *ir.Element) (bool, error) {
	if el.Name == "metadata" && parent != nil {
		return true, visit.Remove
	}
	return false, nil
}
