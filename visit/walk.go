package visit

import (
	"errors"

	"github.com/vecdoc/svgopt/ir"
)

// Remove marks the visited node for removal from its parent. The node
// is detached after the current walk over its siblings finishes.
// Returned from ElementEnter it also skips the element's children and
// its exit call. Remove on the root element is ignored.
var Remove = errors.New("remove node")

// SkipChildren makes ElementEnter skip the element's children. The
// exit call still runs.
var SkipChildren = errors.New("skip children")

// Walk traverses the whole document: prologue, root subtree, epilogue.
// Children appended during the walk survive but are not visited.
func Walk(doc *ir.Document, v Visitor) error {
	if err := walkSiblings(&doc.Prologue, nil, v); err != nil {
		return err
	}
	if err := walkElement(doc.Root, nil, v); err != nil && err != Remove {
		return err
	}
	return walkSiblings(&doc.Epilogue, nil, v)
}

// WalkElement traverses a single subtree. Remove returned for el itself
// is reported to the caller, which owns el's detachment.
func WalkElement(el *ir.Element, v Visitor) error {
	return walkElement(el, nil, v)
}

func walkElement(el, parent *ir.Element, v Visitor) error {
	err := v.ElementEnter(el, parent)
	switch err {
	case nil:
		if err := walkSiblings(&el.Children, el, v); err != nil {
			return err
		}
	case SkipChildren:
	case Remove:
		return Remove
	default:
		return err
	}
	err = v.ElementExit(el, parent)
	if err == SkipChildren {
		err = nil
	}
	return err
}

// walkSiblings visits the first len(*nodes) entries as of entry, then
// applies collected removals. Removal is deferred, so indices below the
// snapshot count stay valid for the whole loop even though callbacks
// may append.
func walkSiblings(nodes *[]ir.Node, parent *ir.Element, v Visitor) error {
	var removed []int
	n := len(*nodes)
	for i := 0; i < n; i++ {
		var err error
		switch c := (*nodes)[i].(type) {
		case *ir.Element:
			err = walkElement(c, parent, v)
		case ir.Text:
			err = v.Text(c, parent)
		case ir.Comment:
			err = v.Comment(c, parent)
		case ir.CData:
			err = v.CData(c, parent)
		case ir.ProcInst:
			err = v.ProcInst(c, parent)
		case ir.DocType:
			err = v.DocType(c, parent)
		}
		switch err {
		case nil:
		case Remove:
			removed = append(removed, i)
		default:
			return err
		}
	}
	if len(removed) == 0 {
		return nil
	}
	cur := *nodes
	out := cur[:0]
	ri := 0
	for i, nd := range cur {
		if ri < len(removed) && removed[ri] == i {
			ri++
			continue
		}
		out = append(out, nd)
	}
	*nodes = out
	return nil
}
