package passes

import (
	"encoding/json"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/visit"
)

func init() {
	pass.Register(func() pass.Pass { return &removeEmptyContainers{} })
}

// containerNames are grouping elements that render nothing themselves.
var containerNames = map[string]bool{
	"a":             true,
	"defs":          true,
	"g":             true,
	"marker":        true,
	"mask":          true,
	"missing-glyph": true,
	"pattern":       true,
	"switch":        true,
	"symbol":        true,
}

// removeEmptyContainers drops container elements that end up with no
// children. Removal runs on element exit, so a container emptied by the
// removal of its own children disappears in the same walk.
type removeEmptyContainers struct{}

func (p *removeEmptyContainers) Name() string            { return "removeEmptyContainers" }
func (p *removeEmptyContainers) Category() pass.Category { return pass.Cleanup }

func (p *removeEmptyContainers) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, &struct{}{})
}

func (p *removeEmptyContainers) Apply(doc *ir.Document) (bool, error) {
	v := &emptyContainerDropper{}
	if err := visit.Walk(doc, v); err != nil {
		return v.changed, err
	}
	return v.changed, nil
}

type emptyContainerDropper struct {
	visit.Base
	changed bool
}

func (v *emptyContainerDropper) ElementExit(el, parent *ir.Element) error {
	if parent == nil || !containerNames[el.Name] || len(el.Children) > 0 {
		return nil
	}
	// a pattern or mask with attributes still participates in rendering
	// through references even when childless
	if (el.Name == "pattern" || el.Name == "mask") && len(el.Attrs) > 0 {
		return nil
	}
	v.changed = true
	return visit.Remove
}
