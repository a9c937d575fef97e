package debug

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vecdoc/svgopt/encode"
	"github.com/vecdoc/svgopt/ir"
)

func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Document:
			buf := bytes.NewBuffer(nil)
			if err := encode.Encode(x, buf, encode.EncodePretty(true)); err != nil {
				args[i] = fmt.Sprintf("[raw document] %v", x)
				continue
			}
			args[i] = buf.String()
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

// Snapshot captures the document's markup when pass diffing is on.
func Snapshot(doc *ir.Document) string {
	if !d.PassDiff {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodePretty(true)); err != nil {
		return ""
	}
	return buf.String()
}

// DiffSnapshot logs a line diff between the snapshot taken before a
// pass ran and the document's state after it.
func DiffSnapshot(name, before string, doc *ir.Document) {
	if !d.PassDiff {
		return
	}
	after := Snapshot(doc)
	if before == after {
		Logf("pass %s: no change\n", name)
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	dmp.DiffCleanupSemantic(diffs)
	Logf("pass %s:\n%s\n", name, dmp.DiffPrettyText(diffs))
}
