package ir

// Document is the root container: prologue nodes before the root element,
// exactly one root element, epilogue nodes after it, and the document-level
// metadata from the XML declaration.
type Document struct {
	Prologue []Node
	Root     *Element
	Epilogue []Node

	// Version, Encoding and Standalone mirror the XML declaration; empty
	// when absent. A non-empty Version causes the declaration to be
	// re-emitted by the stringifier.
	Version    string
	Encoding   string
	Standalone string
}

// New returns a Document whose Root is an empty svg element, keeping the
// one-root invariant from construction onward.
func New() *Document {
	return &Document{Root: NewElement("svg")}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	res := &Document{
		Version:    d.Version,
		Encoding:   d.Encoding,
		Standalone: d.Standalone,
	}
	res.Prologue = cloneNodes(d.Prologue)
	res.Epilogue = cloneNodes(d.Epilogue)
	if d.Root != nil {
		res.Root = d.Root.Clone()
	} else {
		res.Root = NewElement("svg")
	}
	return res
}

func cloneNodes(ns []Node) []Node {
	if ns == nil {
		return nil
	}
	res := make([]Node, len(ns))
	for i, n := range ns {
		res[i] = CloneNode(n)
	}
	return res
}
