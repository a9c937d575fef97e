package passes

import (
	"encoding/json"
	"strings"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/visit"
)

func init() {
	pass.Register(func() pass.Pass { return &removeComments{PreservePatterns: true} })
}

// removeComments drops comment nodes everywhere in the document.
// Comments opening with ! are legal notices and survive by default.
type removeComments struct {
	PreservePatterns bool `json:"preservePatterns"`
}

func (p *removeComments) Name() string            { return "removeComments" }
func (p *removeComments) Category() pass.Category { return pass.Element }

func (p *removeComments) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, p)
}

func (p *removeComments) Apply(doc *ir.Document) (bool, error) {
	v := &commentDropper{keepBang: p.PreservePatterns}
	if err := visit.Walk(doc, v); err != nil {
		return v.changed, err
	}
	return v.changed, nil
}

type commentDropper struct {
	visit.Base
	keepBang bool
	changed  bool
}

func (v *commentDropper) Comment(c ir.Comment, _ *ir.Element) error {
	if v.keepBang && strings.HasPrefix(string(c), "!") {
		return nil
	}
	v.changed = true
	return visit.Remove
}
