package parse

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/vecdoc/svgopt/ir"
)

// Parse parses a complete in-memory document. Inputs larger than a
// threshold multiple of the configured buffer size are handed to the
// streaming code path so memory use stays proportional to buffer size.
func Parse(d []byte, opts ...Option) (*ir.Document, error) {
	po := newOpts(opts)
	if len(d) > po.bufferSize*streamThreshold {
		return ParseReader(bytes.NewReader(d), opts...)
	}
	p := &parser{opts: po, buf: d, eof: true}
	return p.run()
}

// ParseReader parses incrementally from r over a bounded buffer. When the
// XML declaration names a non-UTF-8 encoding, the stream is re-decoded to
// UTF-8 first.
func ParseReader(r io.Reader, opts ...Option) (*ir.Document, error) {
	po := newOpts(opts)
	dr, err := decodeReader(r)
	if err != nil {
		return nil, err
	}
	p := &parser{opts: po, r: dr, buf: make([]byte, 0, po.bufferSize)}
	return p.run()
}

var xmlEncRe = regexp.MustCompile(`(?i)<\?xml[^>]*encoding\s*=\s*["']([A-Za-z0-9._-]+)["']`)

// decodeReader sniffs the declared encoding from the XML declaration and
// wraps the stream in a decoding reader when it is not UTF-8.
func decodeReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 1024)
	head, err := br.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	if m := xmlEncRe.FindSubmatch(head); m != nil {
		label := strings.ToLower(string(m[1]))
		switch label {
		case "utf-8", "utf8", "us-ascii", "ascii":
		default:
			return charset.NewReaderLabel(label, br)
		}
	}
	return br, nil
}
