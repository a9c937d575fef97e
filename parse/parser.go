package parse

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vecdoc/svgopt/ir"
)

type parser struct {
	opts *parseOpts

	r   io.Reader // nil when the whole input is in buf
	buf []byte
	cur int   // index of the next unread byte in buf
	off int64 // absolute offset of buf[0]
	eof bool

	pd  posDoc
	doc *ir.Document

	stack      []*ir.Element
	sawRoot    bool
	preserveWS int

	entities map[string]string
}

func (p *parser) run() (*ir.Document, error) {
	p.doc = ir.New()
	p.entities = map[string]string{}
	for {
		if err := p.text(); err != nil {
			return nil, err
		}
		if !p.have(1) {
			break
		}
		if err := p.markup(); err != nil {
			return nil, err
		}
	}
	if len(p.stack) > 0 {
		return nil, p.errAt(ErrUnexpectedEOF, p.abs(),
			fmt.Sprintf("element <%s> not closed", p.stack[len(p.stack)-1].Name))
	}
	if !p.sawRoot {
		return nil, p.errAt(ErrSyntax, p.abs(), "missing root element")
	}
	return p.doc, nil
}

// abs is the absolute offset of the next unread byte.
func (p *parser) abs() int64 {
	return p.off + int64(p.cur)
}

// have ensures at least n unread bytes are buffered, reading more in
// streaming mode. It reports false at end of input.
func (p *parser) have(n int) bool {
	for len(p.buf)-p.cur < n {
		if p.eof {
			return false
		}
		p.fill()
	}
	return true
}

func (p *parser) fill() {
	// compact the consumed prefix so the window stays bounded
	if p.cur > 0 {
		n := copy(p.buf, p.buf[p.cur:])
		p.off += int64(p.cur)
		p.buf = p.buf[:n]
		p.cur = 0
	}
	chunk := p.opts.bufferSize - len(p.buf)
	if chunk <= 0 {
		chunk = 4096
	}
	if chunk > 4096 {
		chunk = 4096
	}
	rb := make([]byte, chunk)
	n, err := p.r.Read(rb)
	if n > 0 {
		p.buf = append(p.buf, rb[:n]...)
	}
	if err != nil {
		p.eof = true
	}
}

func (p *parser) next() (byte, bool) {
	if !p.have(1) {
		return 0, false
	}
	b := p.buf[p.cur]
	if b == '\n' {
		p.pd.mark(p.abs())
	}
	p.cur++
	return b, true
}

func (p *parser) peek() (byte, bool) {
	if !p.have(1) {
		return 0, false
	}
	return p.buf[p.cur], true
}

func (p *parser) hasPrefix(s string) bool {
	if !p.have(len(s)) {
		return false
	}
	return string(p.buf[p.cur:p.cur+len(s)]) == s
}

func (p *parser) skip(n int) {
	for i := 0; i < n; i++ {
		p.next()
	}
}

func (p *parser) skipSpace() {
	for {
		c, ok := p.peek()
		if !ok || !isWS(c) {
			return
		}
		p.next()
	}
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// context extracts a snippet around an absolute offset from whatever is
// still in the window.
func (p *parser) context(off int64) string {
	ri := int(off - p.off)
	lo := ri - 10
	if lo < 0 {
		lo = 0
	}
	hi := ri + 10
	if hi > len(p.buf) {
		hi = len(p.buf)
	}
	if lo >= hi {
		return ""
	}
	return string(p.buf[lo:hi])
}

func (p *parser) errAt(kind error, off int64, msg string) error {
	line, col := p.pd.lineCol(off)
	return &Error{
		Kind: kind,
		Msg:  msg,
		Pos:  Pos{Offset: off, Line: line, Col: col, Context: p.context(off)},
	}
}

// place attaches a parsed node at the current position: inside the open
// element, or in the document prologue/epilogue around the root.
func (p *parser) place(n ir.Node) {
	if len(p.stack) > 0 {
		p.stack[len(p.stack)-1].AddChild(n)
		return
	}
	if !p.sawRoot {
		p.doc.Prologue = append(p.doc.Prologue, n)
		return
	}
	p.doc.Epilogue = append(p.doc.Epilogue, n)
}

// text consumes character data up to the next '<' or end of input.
func (p *parser) text() error {
	start := p.abs()
	var out []byte
	for {
		c, ok := p.peek()
		if !ok || c == '<' {
			break
		}
		p.next()
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}
	s := string(out)
	if !utf8.ValidString(s) {
		return p.errAt(ErrEncoding, start, "invalid UTF-8 in text content")
	}
	if p.opts.expandEntities {
		s = expandText(s, p.entities)
	}
	preserve := p.preserveWS > 0 || p.opts.keepWhitespace
	if len(p.stack) == 0 {
		if isAllSpace(s) {
			return nil
		}
		return p.errAt(ErrSyntax, start, "text content outside root element")
	}
	if !preserve {
		if isAllSpace(s) {
			return nil
		}
		s = strings.TrimFunc(s, func(r rune) bool {
			return r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
	}
	p.place(ir.Text(s))
	return nil
}

func isAllSpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isWS(s[i]) {
			return false
		}
	}
	return true
}

// markup dispatches on the construct starting at '<'.
func (p *parser) markup() error {
	start := p.abs()
	switch {
	case p.hasPrefix("<!--"):
		return p.comment(start)
	case p.hasPrefix("<![CDATA["):
		return p.cdata(start)
	case p.hasPrefix("<!DOCTYPE"), p.hasPrefix("<!doctype"):
		return p.doctype(start)
	case p.hasPrefix("<?"):
		return p.procInst(start)
	case p.hasPrefix("</"):
		return p.endTag(start)
	case p.hasPrefix("<!"):
		return p.errAt(ErrSyntax, start, "unsupported markup declaration")
	default:
		return p.startTag(start)
	}
}

// scanUntil consumes input until the terminator sequence, returning the
// bytes before it. Reports false when input ends first.
func (p *parser) scanUntil(seq string) (string, bool) {
	var out []byte
	n := len(seq)
	for {
		c, ok := p.next()
		if !ok {
			return string(out), false
		}
		out = append(out, c)
		if len(out) >= n && string(out[len(out)-n:]) == seq {
			return string(out[:len(out)-n]), true
		}
	}
}

func (p *parser) comment(start int64) error {
	p.skip(4)
	body, ok := p.scanUntil("-->")
	if !ok {
		return p.errAt(ErrUnexpectedEOF, start, "unterminated comment")
	}
	if !utf8.ValidString(body) {
		return p.errAt(ErrEncoding, start, "invalid UTF-8 in comment")
	}
	if !p.opts.dropComments {
		p.place(ir.Comment(body))
	}
	return nil
}

func (p *parser) cdata(start int64) error {
	p.skip(9)
	body, ok := p.scanUntil("]]>")
	if !ok {
		return p.errAt(ErrUnexpectedEOF, start, "unterminated CDATA section")
	}
	if !utf8.ValidString(body) {
		return p.errAt(ErrEncoding, start, "invalid UTF-8 in CDATA section")
	}
	p.place(ir.CData(body))
	return nil
}

// doctype consumes a DOCTYPE declaration, including an internal subset in
// square brackets, and collects entity declarations from it.
func (p *parser) doctype(start int64) error {
	p.skip(len("<!DOCTYPE"))
	var out []byte
	depth := 0
	var quote byte
	for {
		c, ok := p.next()
		if !ok {
			return p.errAt(ErrUnexpectedEOF, start, "unterminated DOCTYPE")
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
		} else if c == '"' || c == '\'' {
			quote = c
		} else if c == '[' {
			depth++
		} else if c == ']' {
			depth--
		} else if c == '>' && depth <= 0 {
			break
		}
		out = append(out, c)
	}
	raw := strings.TrimSpace(string(out))
	if !utf8.ValidString(raw) {
		return p.errAt(ErrEncoding, start, "invalid UTF-8 in DOCTYPE")
	}
	if p.opts.expandEntities {
		if n := countEntityDecls(raw); n > p.opts.maxEntities {
			return p.errAt(ErrEntityLimit, start,
				fmt.Sprintf("%d entity declarations exceed the limit of %d", n, p.opts.maxEntities))
		}
		collectEntities(raw, p.entities)
	}
	p.place(ir.DocType(raw))
	return nil
}

var (
	xmlVersionRe    = regexp.MustCompile(`version\s*=\s*["']([^"']*)["']`)
	xmlEncodingRe   = regexp.MustCompile(`encoding\s*=\s*["']([^"']*)["']`)
	xmlStandaloneRe = regexp.MustCompile(`standalone\s*=\s*["']([^"']*)["']`)
)

func (p *parser) procInst(start int64) error {
	p.skip(2)
	body, ok := p.scanUntil("?>")
	if !ok {
		return p.errAt(ErrUnexpectedEOF, start, "unterminated processing instruction")
	}
	if !utf8.ValidString(body) {
		return p.errAt(ErrEncoding, start, "invalid UTF-8 in processing instruction")
	}
	target := body
	data := ""
	if i := strings.IndexFunc(body, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}); i >= 0 {
		target, data = body[:i], strings.TrimSpace(body[i+1:])
	}
	if target == "xml" && !p.sawRoot && len(p.stack) == 0 {
		// XML declaration: recorded as document metadata, not a node
		if m := xmlVersionRe.FindStringSubmatch(data); m != nil {
			p.doc.Version = m[1]
		}
		if m := xmlEncodingRe.FindStringSubmatch(data); m != nil {
			p.doc.Encoding = m[1]
		}
		if m := xmlStandaloneRe.FindStringSubmatch(data); m != nil {
			p.doc.Standalone = m[1]
		}
		return nil
	}
	p.place(ir.ProcInst{Target: target, Data: data})
	return nil
}

func (p *parser) endTag(start int64) error {
	p.skip(2)
	body, ok := p.scanUntil(">")
	if !ok {
		return p.errAt(ErrUnexpectedEOF, start, "unterminated closing tag")
	}
	name := strings.TrimSpace(body)
	if len(p.stack) == 0 {
		return p.errAt(ErrSyntax, start, fmt.Sprintf("closing tag </%s> without open element", name))
	}
	top := p.stack[len(p.stack)-1]
	if top.Name != name {
		return p.errAt(ErrSyntax, start,
			fmt.Sprintf("closing tag </%s> does not match <%s>", name, top.Name))
	}
	p.stack = p.stack[:len(p.stack)-1]
	if ir.PreservesWhitespace(name) {
		p.preserveWS--
	}
	return nil
}

func isNameStart(c byte) bool {
	return c == '_' || c == ':' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isNameStart(c) || c == '-' || c == '.' || (c >= '0' && c <= '9')
}

func (p *parser) name(start int64) (string, error) {
	c, ok := p.peek()
	if !ok {
		return "", p.errAt(ErrUnexpectedEOF, start, "input ends inside tag")
	}
	if !isNameStart(c) {
		return "", p.errAt(ErrSyntax, p.abs(), fmt.Sprintf("malformed name starting with %q", c))
	}
	var out []byte
	for {
		c, ok := p.peek()
		if !ok || !isNameByte(c) {
			break
		}
		p.next()
		out = append(out, c)
	}
	return string(out), nil
}

func (p *parser) startTag(start int64) error {
	p.skip(1)
	name, err := p.name(start)
	if err != nil {
		return err
	}
	el := ir.NewElement(name)
	selfClose := false
	for {
		p.skipSpace()
		c, ok := p.peek()
		if !ok {
			return p.errAt(ErrUnexpectedEOF, start, fmt.Sprintf("tag <%s> not closed", name))
		}
		if c == '>' {
			p.next()
			break
		}
		if c == '/' {
			p.next()
			if c2, ok := p.peek(); !ok || c2 != '>' {
				return p.errAt(ErrSyntax, p.abs(), "expected '>' after '/'")
			}
			p.next()
			selfClose = true
			break
		}
		if err := p.attribute(el); err != nil {
			return err
		}
	}
	return p.openElement(el, selfClose, start)
}

func (p *parser) attribute(el *ir.Element) error {
	start := p.abs()
	name, err := p.name(start)
	if err != nil {
		return err
	}
	p.skipSpace()
	if c, ok := p.peek(); !ok || c != '=' {
		return p.errAt(ErrSyntax, p.abs(), fmt.Sprintf("attribute %q without value", name))
	}
	p.next()
	p.skipSpace()
	q, ok := p.peek()
	if !ok || (q != '"' && q != '\'') {
		return p.errAt(ErrSyntax, p.abs(), fmt.Sprintf("attribute %q value is not quoted", name))
	}
	p.next()
	delim := `"`
	if q == '\'' {
		delim = "'"
	}
	val, found := p.scanUntil(delim)
	if !found {
		return p.errAt(ErrUnexpectedEOF, start, fmt.Sprintf("attribute %q value not terminated", name))
	}
	if !utf8.ValidString(val) {
		return p.errAt(ErrEncoding, start, fmt.Sprintf("invalid UTF-8 in attribute %q", name))
	}
	if p.opts.expandEntities {
		val = expandText(val, p.entities)
	}
	switch {
	case name == "xmlns":
		el.SetNamespace("", val)
	case strings.HasPrefix(name, "xmlns:"):
		el.SetNamespace(name[len("xmlns:"):], val)
	default:
		el.SetAttr(name, val)
	}
	return nil
}

func (p *parser) openElement(el *ir.Element, selfClose bool, start int64) error {
	if len(p.stack)+1 > p.opts.maxDepth {
		return p.errAt(ErrDepth, start,
			fmt.Sprintf("nesting depth %d exceeds the limit of %d", len(p.stack)+1, p.opts.maxDepth))
	}
	if len(p.stack) == 0 {
		if p.sawRoot {
			return p.errAt(ErrSyntax, start, fmt.Sprintf("second root element <%s>", el.Name))
		}
		p.doc.Root = el
		p.sawRoot = true
	} else {
		p.stack[len(p.stack)-1].AddChild(el)
	}
	if !selfClose {
		p.stack = append(p.stack, el)
		if ir.PreservesWhitespace(el.Name) {
			p.preserveWS++
		}
	}
	return nil
}
