package ir

// Node is one node in the document tree. The set of implementations is
// closed: *Element, Text, Comment, CData, ProcInst and DocType. Consumers
// switching on a Node must handle all of them.
type Node interface {
	node()
}

// Text is character data appearing between tags.
type Text string

// Comment is the body of an XML comment, without the <!-- --> delimiters.
type Comment string

// CData is the body of a CDATA section, without the <![CDATA[ ]]> delimiters.
type CData string

// ProcInst is a processing instruction such as <?xml-stylesheet href="x"?>.
type ProcInst struct {
	Target string
	Data   string
}

// DocType is the raw text of a DOCTYPE declaration, without the
// <!DOCTYPE > delimiters.
type DocType string

// Elements whose subtree keeps whitespace verbatim.
var preserveWhitespace = map[string]bool{
	"text":     true,
	"tspan":    true,
	"textPath": true,
	"tref":     true,
	"style":    true,
	"script":   true,
	"pre":      true,
	"title":    true,
	"desc":     true,
}

// PreservesWhitespace reports whether an element with the given tag
// name keeps whitespace verbatim in its subtree. A namespace prefix on
// the name is ignored.
func PreservesWhitespace(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			name = name[i+1:]
			break
		}
	}
	return preserveWhitespace[name]
}

func (*Element) node() {}
func (Text) node()     {}
func (Comment) node()  {}
func (CData) node()    {}
func (ProcInst) node() {}
func (DocType) node()  {}

// Attr is one name/value pair. Attribute and namespace lists preserve
// insertion order with unique names, so lookups are linear scans; SVG
// elements rarely carry more than a handful of attributes.
type Attr struct {
	Name  string
	Value string
}

// Element is a tagged node. It exclusively owns its children and its
// attribute and namespace lists. There is no parent back-reference;
// traversal carries ancestry context explicitly.
type Element struct {
	// Name is the tag name, possibly prefixed ("svg", "xlink:href" style
	// prefixes stay in the name).
	Name string
	// Attrs holds ordinary attributes in document order.
	Attrs []Attr
	// Namespaces holds xmlns declarations made at this element. The
	// default namespace uses Name "".
	Namespaces []Attr
	Children   []Node
}

func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			return e.Attrs[i].Value, true
		}
	}
	return "", false
}

func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets the named attribute, replacing in place when it exists so
// attribute order is stable under repeated writes.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr removes the named attribute, reporting whether it was present.
func (e *Element) RemoveAttr(name string) bool {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Namespace returns the URI declared at this element for prefix ("" for
// the default namespace). Resolution across ancestors is the traversal's
// job; this only consults declarations made here.
func (e *Element) Namespace(prefix string) (string, bool) {
	for i := range e.Namespaces {
		if e.Namespaces[i].Name == prefix {
			return e.Namespaces[i].Value, true
		}
	}
	return "", false
}

func (e *Element) SetNamespace(prefix, uri string) {
	for i := range e.Namespaces {
		if e.Namespaces[i].Name == prefix {
			e.Namespaces[i].Value = uri
			return
		}
	}
	e.Namespaces = append(e.Namespaces, Attr{Name: prefix, Value: uri})
}

func (e *Element) AddChild(n Node) {
	e.Children = append(e.Children, n)
}

// ChildElements returns the children that are elements.
func (e *Element) ChildElements() []*Element {
	var res []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			res = append(res, el)
		}
	}
	return res
}

// IsWhitespaceOnly reports whether the element contains nothing but
// whitespace text and comments.
func (e *Element) IsWhitespaceOnly() bool {
	for _, c := range e.Children {
		switch n := c.(type) {
		case Text:
			if !isSpace(string(n)) {
				return false
			}
		case Comment:
		default:
			return false
		}
	}
	return true
}

func isSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	res := &Element{Name: e.Name}
	res.Attrs = append([]Attr(nil), e.Attrs...)
	res.Namespaces = append([]Attr(nil), e.Namespaces...)
	if len(e.Children) > 0 {
		res.Children = make([]Node, len(e.Children))
		for i, c := range e.Children {
			res.Children[i] = CloneNode(c)
		}
	}
	return res
}

// CloneNode deep-copies a node of any kind.
func CloneNode(n Node) Node {
	if el, ok := n.(*Element); ok {
		return el.Clone()
	}
	// all other kinds are value types
	return n
}
