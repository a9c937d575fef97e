package passes

import (
	"encoding/json"
	"testing"

	"github.com/vecdoc/svgopt/encode"
	"github.com/vecdoc/svgopt/parse"
	"github.com/vecdoc/svgopt/pass"
)

// apply runs one pass over src and returns the encoded result.
func apply(t *testing.T, name string, params string, src string) (string, bool) {
	t.Helper()
	f, ok := pass.Lookup(name)
	if !ok {
		t.Fatalf("pass %q not registered", name)
	}
	p := f()
	var raw json.RawMessage
	if params != "" {
		raw = json.RawMessage(params)
	}
	if err := p.ValidateParams(raw); err != nil {
		t.Fatalf("params: %v", err)
	}
	doc, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	changed, err := p.Apply(doc)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	return encode.MustString(doc), changed
}

func TestRemoveComments(t *testing.T) {
	tests := []struct {
		name   string
		params string
		src    string
		want   string
	}{
		{
			name: "drops comments everywhere",
			src:  `<!--a--><svg><!--b--><g><!--c--><rect/></g></svg>`,
			want: `<svg><g><rect/></g></svg>`,
		},
		{
			name: "keeps legal comments by default",
			src:  `<svg><!--! (c) 2026 --><!--other--></svg>`,
			want: `<svg><!--! (c) 2026 --></svg>`,
		},
		{
			name:   "preservePatterns off",
			params: `{"preservePatterns": false}`,
			src:    `<svg><!--! (c) 2026 --></svg>`,
			want:   `<svg/>`,
		},
	}
	for _, tc := range tests {
		got, _ := apply(t, "removeComments", tc.params, tc.src)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRemoveMetadata(t *testing.T) {
	got, changed := apply(t, "removeMetadata", "",
		`<svg><metadata><rdf/></metadata><rect/></svg>`)
	if got != `<svg><rect/></svg>` || !changed {
		t.Errorf("got %s changed=%v", got, changed)
	}
	_, changed = apply(t, "removeMetadata", "", `<svg><rect/></svg>`)
	if changed {
		t.Error("reported change on untouched document")
	}
}

func TestRemoveDoctype(t *testing.T) {
	got, changed := apply(t, "removeDoctype", "",
		`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`)
	if got != `<svg/>` || !changed {
		t.Errorf("got %s changed=%v", got, changed)
	}
}

func TestRemoveEmptyContainers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "drops empty groups",
			src:  `<svg><g/><rect/></svg>`,
			want: `<svg><rect/></svg>`,
		},
		{
			name: "cascades in one application",
			src:  `<svg><g><defs><g/></defs></g><rect/></svg>`,
			want: `<svg><rect/></svg>`,
		},
		{
			name: "keeps non-containers",
			src:  `<svg><rect/><circle/></svg>`,
			want: `<svg><rect/><circle/></svg>`,
		},
		{
			name: "keeps attributed pattern",
			src:  `<svg><pattern id="p"/></svg>`,
			want: `<svg><pattern id="p"/></svg>`,
		},
		{
			name: "root survives",
			src:  `<svg/>`,
			want: `<svg/>`,
		},
	}
	for _, tc := range tests {
		got, _ := apply(t, "removeEmptyContainers", "", tc.src)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestCleanupIds(t *testing.T) {
	tests := []struct {
		name   string
		params string
		src    string
		want   string
	}{
		{
			name: "removes unused ids",
			src:  `<svg><rect id="unused"/><rect id="used"/><use href="#used"/></svg>`,
			want: `<svg><rect/><rect id="used"/><use href="#used"/></svg>`,
		},
		{
			name: "url reference counts as use",
			src:  `<svg><linearGradient id="lg"/><rect fill="url(#lg)"/></svg>`,
			want: `<svg><linearGradient id="lg"/><rect fill="url(#lg)"/></svg>`,
		},
		{
			name:   "preserve list wins",
			params: `{"remove": true, "preserve": ["keep"]}`,
			src:    `<svg><rect id="keep"/></svg>`,
			want:   `<svg><rect id="keep"/></svg>`,
		},
		{
			name:   "minify rewrites references",
			params: `{"remove": true, "minify": true}`,
			src:    `<svg><linearGradient id="verylonggradientname"/><rect fill="url(#verylonggradientname)"/><use xlink:href="#verylonggradientname"/></svg>`,
			want:   `<svg><linearGradient id="a"/><rect fill="url(#a)"/><use xlink:href="#a"/></svg>`,
		},
		{
			name:   "remove disabled keeps unused",
			params: `{"remove": false}`,
			src:    `<svg><rect id="unused"/></svg>`,
			want:   `<svg><rect id="unused"/></svg>`,
		},
	}
	for _, tc := range tests {
		got, _ := apply(t, "cleanupIds", tc.params, tc.src)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestConvertPathData(t *testing.T) {
	tests := []struct {
		name   string
		params string
		src    string
		want   string
	}{
		{
			name: "compacts separators",
			src:  `<svg><path d="M 10 , 20 L 30 , 40"/></svg>`,
			want: `<svg><path d="M10,20L30,40"/></svg>`,
		},
		{
			name: "drops redundant segments",
			src:  `<svg><path d="M10 10 L10 10 L20 20"/></svg>`,
			want: `<svg><path d="M10,10L20,20"/></svg>`,
		},
		{
			name: "straightens flat curves",
			src:  `<svg><path d="M0 0 C 10 0 20 0 30 0"/></svg>`,
			want: `<svg><path d="M0,0L30,0"/></svg>`,
		},
		{
			name: "keeps malformed data",
			src:  `<svg><path d="banana"/></svg>`,
			want: `<svg><path d="banana"/></svg>`,
		},
		{
			name: "keeps shorter original",
			src:  `<svg><path d="M0,0L1,1"/></svg>`,
			want: `<svg><path d="M0,0L1,1"/></svg>`,
		},
		{
			name:   "precision rounds",
			params: `{"precision": 2}`,
			src:    `<svg><path d="M0.12345 0.6789 L1 1"/></svg>`,
			want:   `<svg><path d="M.12.68L1,1"/></svg>`,
		},
	}
	for _, tc := range tests {
		got, _ := apply(t, "convertPathData", tc.params, tc.src)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestCleanupNumericValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "strips px and zeros",
			src:  `<svg width="100px" height="0.50"/>`,
			want: `<svg width="100" height=".5"/>`,
		},
		{
			name: "keeps other units",
			src:  `<svg width="10mm" height="50%"/>`,
			want: `<svg width="10mm" height="50%"/>`,
		},
		{
			name: "rounds to precision",
			src:  `<svg><circle r="1.23456"/></svg>`,
			want: `<svg><circle r="1.235"/></svg>`,
		},
		{
			name: "ignores non-numeric",
			src:  `<svg width="auto"/>`,
			want: `<svg width="auto"/>`,
		},
	}
	for _, tc := range tests {
		got, _ := apply(t, "cleanupNumericValues", "", tc.src)
		if got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDefaultPipeline(t *testing.T) {
	r, err := pass.NewRunner(Default())
	if err != nil {
		t.Fatal(err)
	}
	src := `<!DOCTYPE svg><!--note--><svg><metadata>m</metadata><g/><path d="M 1 1 L 1 1 L 2 2"/></svg>`
	doc, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	rep, err := r.Run(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Changed {
		t.Error("no change reported")
	}
	got := encode.MustString(doc)
	want := `<svg><path d="M1,1L2,2"/></svg>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDefaultPipelineIdempotent(t *testing.T) {
	src := `<svg><g><rect id="x"/></g><path d="M0 0 C10 0 20 0 30 0"/></svg>`
	doc, err := parse.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	r, err := pass.NewRunner(Default())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Run(doc); err != nil {
		t.Fatal(err)
	}
	first := encode.MustString(doc)
	if _, err := r.Run(doc); err != nil {
		t.Fatal(err)
	}
	second := encode.MustString(doc)
	if first != second {
		t.Errorf("second run changed output:\n%s\n%s", first, second)
	}
}
