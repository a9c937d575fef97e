package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vecdoc/svgopt/ir"
)

func TestParseOK(t *testing.T) {
	tests := []struct {
		in string
	}{
		{in: `<svg/>`},
		{in: `<svg></svg>`},
		{in: `<svg xmlns="http://www.w3.org/2000/svg"><g><rect x="1"/></g></svg>`},
		{in: `<?xml version="1.0"?><svg/>`},
		{in: `<!-- hdr --><svg/><!-- trailer -->`},
		{in: `<svg><![CDATA[a < b]]></svg>`},
		{in: `<svg><style>.a { fill: red; }</style></svg>`},
		{in: `<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`},
		{in: `<svg><text> keep  me </text></svg>`},
		{in: `<svg attr="a&#65;b"/>`},
	}
	for _, tc := range tests {
		if _, err := Parse([]byte(tc.in)); err != nil {
			t.Errorf("Parse(%q): %v", tc.in, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		kind error
	}{
		{in: ``, kind: ErrSyntax},
		{in: `<svg>`, kind: ErrUnexpectedEOF},
		{in: `<svg></g>`, kind: ErrSyntax},
		{in: `</svg>`, kind: ErrSyntax},
		{in: `<svg/><svg/>`, kind: ErrSyntax},
		{in: `<svg a=b/>`, kind: ErrSyntax},
		{in: `<svg a/>`, kind: ErrSyntax},
		{in: `<svg><!-- never closed`, kind: ErrUnexpectedEOF},
		{in: `hello<svg/>`, kind: ErrSyntax},
		{in: `<svg>` + "\xff\xfe" + `</svg>`, kind: ErrEncoding},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.in))
		if err == nil {
			t.Errorf("Parse(%q): no error, want %v", tc.in, tc.kind)
			continue
		}
		if !errors.Is(err, tc.kind) {
			t.Errorf("Parse(%q) = %v, want kind %v", tc.in, err, tc.kind)
		}
		var pe *Error
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): error is not *Error: %T", tc.in, err)
		}
	}
}

func TestParseTree(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8"?>
<!-- lead -->
<svg xmlns="http://www.w3.org/2000/svg" width="10">
  <g id="a"><rect x="1" y="2"/>hi</g>
</svg>
<!-- tail -->`
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Version != "1.0" || doc.Encoding != "UTF-8" {
		t.Errorf("metadata = %q %q", doc.Version, doc.Encoding)
	}
	if d := cmp.Diff([]ir.Node{ir.Comment(" lead ")}, doc.Prologue); d != "" {
		t.Errorf("prologue (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]ir.Node{ir.Comment(" tail ")}, doc.Epilogue); d != "" {
		t.Errorf("epilogue (-want +got):\n%s", d)
	}
	root := doc.Root
	if root.Name != "svg" {
		t.Fatalf("root = %q", root.Name)
	}
	if uri, ok := root.Namespace(""); !ok || uri != "http://www.w3.org/2000/svg" {
		t.Errorf("default namespace = %q, %v", uri, ok)
	}
	if v, _ := root.Attr("width"); v != "10" {
		t.Errorf("width = %q", v)
	}
	gs := root.ChildElements()
	if len(gs) != 1 || gs[0].Name != "g" {
		t.Fatalf("children = %#v", root.Children)
	}
	g := gs[0]
	// whitespace-only text between tags is dropped, "hi" is kept
	want := 2
	if len(g.Children) != want {
		t.Fatalf("g children = %#v", g.Children)
	}
	if txt, ok := g.Children[1].(ir.Text); !ok || txt != "hi" {
		t.Errorf("text child = %#v", g.Children[1])
	}
}

func TestWhitespacePreserve(t *testing.T) {
	doc, err := Parse([]byte(`<svg><text>  a  </text><g>  </g></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	els := doc.Root.ChildElements()
	text, g := els[0], els[1]
	if d := cmp.Diff([]ir.Node{ir.Text("  a  ")}, text.Children); d != "" {
		t.Errorf("text children (-want +got):\n%s", d)
	}
	if len(g.Children) != 0 {
		t.Errorf("g children = %#v, want none", g.Children)
	}
}

func TestDoctypeQuotedAngle(t *testing.T) {
	doc, err := Parse([]byte(`<!DOCTYPE svg SYSTEM "a>b"><svg/>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Prologue) != 1 {
		t.Fatalf("prologue = %#v", doc.Prologue)
	}
	dt, ok := doc.Prologue[0].(ir.DocType)
	if !ok || string(dt) != `svg SYSTEM "a>b"` {
		t.Errorf("doctype = %#v", doc.Prologue[0])
	}
}

func TestDropComments(t *testing.T) {
	doc, err := Parse([]byte(`<!--top--><svg><!--inner--><g/></svg>`), WithComments(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Prologue) != 0 {
		t.Errorf("prologue = %#v, want empty", doc.Prologue)
	}
	if len(doc.Root.Children) != 1 {
		t.Errorf("root children = %#v, want the g element only", doc.Root.Children)
	}
}

func TestEntityExpansion(t *testing.T) {
	in := `<!DOCTYPE svg [
  <!ENTITY ns "http://example.org">
  <!ENTITY who 'world'>
  <!ENTITY ext SYSTEM "http://evil.example/x.dtd">
]>
<svg><text>hello &who; &amp; &#33; &ext;</text></svg>`
	doc, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	text := doc.Root.ChildElements()[0]
	got := string(text.Children[0].(ir.Text))
	want := "hello world & ! [external entity]"
	if got != want {
		t.Errorf("expanded text = %q, want %q", got, want)
	}
}

func TestEntityLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE svg [\n")
	for i := 0; i < 1001; i++ {
		b.WriteString("<!ENTITY e")
		b.WriteString(strings.Repeat("x", i%3))
		b.WriteString(" \"v\">\n")
	}
	b.WriteString("]><svg/>")
	_, err := Parse([]byte(b.String()))
	if !errors.Is(err, ErrEntityLimit) {
		t.Fatalf("err = %v, want ErrEntityLimit", err)
	}
}

func TestDepthLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 300; i++ {
		b.WriteString("<g>")
	}
	for i := 0; i < 300; i++ {
		b.WriteString("</g>")
	}
	_, err := Parse([]byte(b.String()))
	if !errors.Is(err, ErrDepth) {
		t.Fatalf("err = %v, want ErrDepth", err)
	}
	// under a higher cap the same input parses
	if _, err := Parse([]byte(b.String()), WithMaxDepth(301)); err != nil {
		t.Fatalf("with raised cap: %v", err)
	}
}

func TestStreamingMatchesBuffered(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg">`)
	for i := 0; i < 500; i++ {
		b.WriteString(`<rect x="1" y="2" width="3" height="4"/>`)
	}
	b.WriteString(`</svg>`)
	in := b.String()

	whole, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	// a tiny buffer forces many fills and exercises the delegation path
	streamed, err := Parse([]byte(in), WithBufferSize(128))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(whole, streamed); d != "" {
		t.Errorf("streamed tree differs (-whole +streamed):\n%s", d)
	}
}

func TestErrorPosition(t *testing.T) {
	_, err := Parse([]byte("<svg>\n  <g a=b/>\n</svg>"))
	var pe *Error
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if pe.Pos.Line != 1 {
		t.Errorf("line = %d, want 1", pe.Pos.Line)
	}
	if pe.Pos.Context == "" {
		t.Error("missing context snippet")
	}
}
