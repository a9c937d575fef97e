package encode

import (
	"bytes"

	"github.com/vecdoc/svgopt/ir"
)

// String encodes doc to a string.
func String(doc *ir.Document, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func MustString(doc *ir.Document, opts ...EncodeOption) string {
	s, err := String(doc, opts...)
	if err != nil {
		panic(err)
	}
	return s
}
