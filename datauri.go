package svgopt

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURIPrefix = "data:image/svg+xml"

// EncodeDataURI renders SVG markup as a data: URI. kind selects the
// payload encoding: base64, enc (percent-escaped) or unenc (verbatim).
func EncodeDataURI(data []byte, kind string) (string, error) {
	switch kind {
	case "base64":
		return dataURIPrefix + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	case "enc":
		return dataURIPrefix + "," + percentEscape(string(data)), nil
	case "unenc":
		return dataURIPrefix + "," + string(data), nil
	}
	return "", fmt.Errorf("unknown data-URI encoding %q", kind)
}

// percentEscape escapes the characters that break data URIs in
// stylesheets and attribute values, leaving the rest readable.
func percentEscape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '%', '#', '<', '>', '"', '\'', '&', '\n', '\r', '\t':
			fmt.Fprintf(&b, "%%%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
