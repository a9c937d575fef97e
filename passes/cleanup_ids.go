package passes

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/pass"
	"github.com/vecdoc/svgopt/visit"
)

func init() {
	pass.Register(func() pass.Pass { return &cleanupIds{Remove: true} })
}

// cleanupIds removes ids nothing references and optionally minifies the
// referenced ones, rewriting every reference to match. It needs the
// whole document to know what is referenced, hence the Global category.
type cleanupIds struct {
	Remove   bool     `json:"remove"`
	Minify   bool     `json:"minify"`
	Preserve []string `json:"preserve"`
}

func (p *cleanupIds) Name() string            { return "cleanupIds" }
func (p *cleanupIds) Category() pass.Category { return pass.Global }

func (p *cleanupIds) ValidateParams(raw json.RawMessage) error {
	return decodeParams(raw, p)
}

var urlRefRe = regexp.MustCompile(`url\(#([^)]+)\)`)

func (p *cleanupIds) Apply(doc *ir.Document) (bool, error) {
	refs := map[string]int{}
	collect := &refCollector{refs: refs}
	if err := visit.Walk(doc, collect); err != nil {
		return false, err
	}

	preserved := map[string]bool{}
	for _, id := range p.Preserve {
		preserved[id] = true
	}

	rename := map[string]string{}
	if p.Minify {
		// reserve every existing id so minified names never collide
		reserved := map[string]bool{}
		for id := range preserved {
			reserved[id] = true
		}
		for _, id := range collect.order {
			reserved[id] = true
		}
		gen := newIDGen(reserved)
		for _, id := range collect.order {
			if preserved[id] || refs[id] == 0 {
				continue
			}
			short := gen.next()
			if len(short) < len(id) {
				rename[id] = short
			}
		}
	}

	apply := &idRewriter{
		refs:      refs,
		preserved: preserved,
		rename:    rename,
		remove:    p.Remove,
	}
	if err := visit.Walk(doc, apply); err != nil {
		return apply.changed, err
	}
	return apply.changed, nil
}

// refCollector gathers id definitions in document order and counts
// references to them.
type refCollector struct {
	visit.Base
	refs  map[string]int
	order []string
}

func (v *refCollector) ElementEnter(el, _ *ir.Element) error {
	if id, ok := el.Attr("id"); ok {
		if _, seen := v.refs[id]; !seen {
			v.refs[id] = 0
			v.order = append(v.order, id)
		}
	}
	for _, a := range el.Attrs {
		for _, id := range referencedIDs(a.Name, a.Value) {
			v.refs[id]++
		}
	}
	return nil
}

// referencedIDs extracts ids referenced by one attribute value.
func referencedIDs(name, value string) []string {
	if name == "id" {
		return nil
	}
	if (name == "href" || name == "xlink:href") && strings.HasPrefix(value, "#") {
		return []string{value[1:]}
	}
	var ids []string
	for _, m := range urlRefRe.FindAllStringSubmatch(value, -1) {
		ids = append(ids, m[1])
	}
	return ids
}

type idRewriter struct {
	visit.Base
	refs      map[string]int
	preserved map[string]bool
	rename    map[string]string
	remove    bool
	changed   bool
}

func (v *idRewriter) ElementEnter(el, _ *ir.Element) error {
	if id, ok := el.Attr("id"); ok && !v.preserved[id] {
		switch {
		case v.refs[id] == 0 && v.remove:
			el.RemoveAttr("id")
			v.changed = true
		case v.rename[id] != "":
			el.SetAttr("id", v.rename[id])
			v.changed = true
		}
	}
	for i, a := range el.Attrs {
		nv := v.rewriteValue(a.Name, a.Value)
		if nv != a.Value {
			el.Attrs[i].Value = nv
			v.changed = true
		}
	}
	return nil
}

func (v *idRewriter) rewriteValue(name, value string) string {
	if len(v.rename) == 0 || name == "id" {
		return value
	}
	if (name == "href" || name == "xlink:href") && strings.HasPrefix(value, "#") {
		if short, ok := v.rename[value[1:]]; ok {
			return "#" + short
		}
		return value
	}
	return urlRefRe.ReplaceAllStringFunc(value, func(m string) string {
		id := urlRefRe.FindStringSubmatch(m)[1]
		if short, ok := v.rename[id]; ok {
			return "url(#" + short + ")"
		}
		return m
	})
}

// idGen yields a, b, ..., z, aa, ab, ... skipping reserved names.
type idGen struct {
	n        int
	reserved map[string]bool
}

func newIDGen(reserved map[string]bool) *idGen {
	return &idGen{reserved: reserved}
}

func (g *idGen) next() string {
	for {
		s := alphaName(g.n)
		g.n++
		if !g.reserved[s] {
			return s
		}
	}
}

func alphaName(n int) string {
	var b []byte
	for {
		b = append([]byte{byte('a' + n%26)}, b...)
		n = n/26 - 1
		if n < 0 {
			return string(b)
		}
	}
}
