package pass

import (
	"encoding/json"

	"github.com/vecdoc/svgopt/ir"
)

// Category fixes a pass's stage in the pipeline.
type Category int

const (
	Global Category = iota
	Element
	Cleanup
)

func (c Category) String() string {
	switch c {
	case Global:
		return "global"
	case Element:
		return "element"
	case Cleanup:
		return "cleanup"
	}
	return "unknown"
}

// Pass is one named document transform. Instances are created per run,
// so ValidateParams may retain the decoded parameters.
type Pass interface {
	Name() string
	Category() Category
	// ValidateParams checks and applies the configured parameters.
	// A nil or empty message means defaults.
	ValidateParams(params json.RawMessage) error
	// Apply transforms doc, reporting whether anything changed.
	Apply(doc *ir.Document) (bool, error)
}

// ElementVisitor is implemented by Element-category passes that work
// one element at a time. VisitElement must not touch descendants of el;
// the runner owns traversal and may return visit.Remove through err to
// detach el. Passes implementing it are eligible for parallel dispatch.
type ElementVisitor interface {
	Pass
	VisitElement(el, parent *ir.Element) (changed bool, err error)
}
