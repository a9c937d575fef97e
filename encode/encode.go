package encode

import (
	"bufio"
	"io"
	"strings"

	"github.com/vecdoc/svgopt/ir"
)

type EncState struct {
	pretty       bool
	indent       string
	eol          string
	finalNewline bool
	noSelfClose  bool

	depth int

	Color func(ColorAttr, string) string
}

// Encode writes doc as SVG markup. Compact by default: no whitespace is
// introduced between nodes, so re-parsing yields the same tree.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: "  ",
		eol:    string(EOLLF),
	}
	for _, opt := range opts {
		opt(es)
	}
	bw := bufio.NewWriter(w)
	if err := encodeDoc(doc, bw, es); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeDoc(doc *ir.Document, w *bufio.Writer, es *EncState) error {
	if doc.Version != "" {
		if err := writeDecl(doc, w, es); err != nil {
			return err
		}
		if err := breakLine(w, es); err != nil {
			return err
		}
	}
	for _, n := range doc.Prologue {
		if err := encodeNode(n, w, es); err != nil {
			return err
		}
		if err := breakLine(w, es); err != nil {
			return err
		}
	}
	if err := encodeElement(doc.Root, w, es); err != nil {
		return err
	}
	for _, n := range doc.Epilogue {
		if err := breakLine(w, es); err != nil {
			return err
		}
		if err := encodeNode(n, w, es); err != nil {
			return err
		}
	}
	if es.finalNewline {
		return writeString(w, es.eol)
	}
	return nil
}

func writeDecl(doc *ir.Document, w *bufio.Writer, es *EncState) error {
	var b strings.Builder
	b.WriteString(`<?xml version="`)
	b.WriteString(doc.Version)
	b.WriteString(`"`)
	if doc.Encoding != "" {
		b.WriteString(` encoding="`)
		b.WriteString(doc.Encoding)
		b.WriteString(`"`)
	}
	if doc.Standalone != "" {
		b.WriteString(` standalone="`)
		b.WriteString(doc.Standalone)
		b.WriteString(`"`)
	}
	b.WriteString("?>")
	return writeString(w, es.color(DeclColor, b.String()))
}

func encodeNode(n ir.Node, w *bufio.Writer, es *EncState) error {
	switch c := n.(type) {
	case *ir.Element:
		return encodeElement(c, w, es)
	case ir.Text:
		return writeString(w, es.color(TextColor, escapeText(string(c))))
	case ir.Comment:
		return writeString(w, es.color(CommentColor, "<!--"+string(c)+"-->"))
	case ir.CData:
		return writeString(w, es.color(TextColor, "<![CDATA["+escapeCData(string(c))+"]]>"))
	case ir.ProcInst:
		s := "<?" + c.Target
		if c.Data != "" {
			s += " " + c.Data
		}
		return writeString(w, es.color(DeclColor, s+"?>"))
	case ir.DocType:
		return writeString(w, es.color(DeclColor, "<!DOCTYPE "+string(c)+">"))
	}
	return nil
}

func encodeElement(el *ir.Element, w *bufio.Writer, es *EncState) error {
	if err := writeOpenTag(el, w, es); err != nil {
		return err
	}
	if len(el.Children) == 0 && !es.noSelfClose {
		return nil
	}
	block := es.pretty && !hasInlineContent(el)
	es.depth++
	for _, c := range el.Children {
		if block {
			if err := writeString(w, es.eol+strings.Repeat(es.indent, es.depth)); err != nil {
				return err
			}
		}
		if err := encodeNode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if block && len(el.Children) > 0 {
		if err := writeString(w, es.eol+strings.Repeat(es.indent, es.depth)); err != nil {
			return err
		}
	}
	return writeString(w, es.color(TagColor, "</"+el.Name+">"))
}

func writeOpenTag(el *ir.Element, w *bufio.Writer, es *EncState) error {
	if err := writeString(w, es.color(TagColor, "<"+el.Name)); err != nil {
		return err
	}
	for _, ns := range el.Namespaces {
		name := "xmlns"
		if ns.Name != "" {
			name += ":" + ns.Name
		}
		if err := writeAttr(name, ns.Value, w, es); err != nil {
			return err
		}
	}
	for _, a := range el.Attrs {
		if err := writeAttr(a.Name, a.Value, w, es); err != nil {
			return err
		}
	}
	end := ">"
	if len(el.Children) == 0 && !es.noSelfClose {
		end = "/>"
	}
	return writeString(w, es.color(TagColor, end))
}

func writeAttr(name, value string, w *bufio.Writer, es *EncState) error {
	if err := writeString(w, " "+es.color(AttrNameColor, name)+"="); err != nil {
		return err
	}
	return writeString(w, es.color(AttrValueColor, `"`+escapeAttr(value)+`"`))
}

// breakLine separates document-level siblings in pretty mode only;
// compact output keeps them adjacent.
func breakLine(w *bufio.Writer, es *EncState) error {
	if !es.pretty {
		return nil
	}
	return writeString(w, es.eol)
}

// hasInlineContent reports whether el's content must be laid out
// inline: either it has character data children, or it is a
// whitespace-preserving element whose subtree would keep injected
// indentation verbatim on reparse.
func hasInlineContent(el *ir.Element) bool {
	if ir.PreservesWhitespace(el.Name) {
		return true
	}
	for _, c := range el.Children {
		switch c.(type) {
		case ir.Text, ir.CData:
			return true
		}
	}
	return false
}

func writeString(w *bufio.Writer, s string) error {
	_, err := w.WriteString(s)
	return err
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

var (
	textEsc = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEsc = strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;")
)

func escapeText(s string) string { return textEsc.Replace(s) }

func escapeAttr(s string) string { return attrEsc.Replace(s) }

// escapeCData splits the terminator sequence across adjacent sections.
func escapeCData(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}
