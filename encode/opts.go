package encode

type EncodeOption func(*EncState)

// EOL selects the line terminator for pretty output and the final
// newline.
type EOL string

const (
	EOLLF   EOL = "\n"
	EOLCRLF EOL = "\r\n"
	EOLCR   EOL = "\r"
)

func EncodePretty(v bool) EncodeOption {
	return func(es *EncState) { es.pretty = v }
}

func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

func EncodeEOL(e EOL) EncodeOption {
	return func(es *EncState) { es.eol = string(e) }
}

// EncodeFinalNewline appends one line terminator after the document.
func EncodeFinalNewline(v bool) EncodeOption {
	return func(es *EncState) { es.finalNewline = v }
}

// EncodeSelfClose controls whether empty elements collapse to <name/>.
// On by default.
func EncodeSelfClose(v bool) EncodeOption {
	return func(es *EncState) { es.noSelfClose = !v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
