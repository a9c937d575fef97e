package parse

const (
	defaultBufferSize  = 64 << 10
	defaultMaxDepth    = 256
	defaultMaxEntities = 1000

	// Parse hands inputs larger than this multiple of the buffer size to
	// the streaming code path.
	streamThreshold = 4
)

type parseOpts struct {
	bufferSize     int
	maxDepth       int
	maxEntities    int
	expandEntities bool
	keepWhitespace bool
	dropComments   bool
}

type Option func(*parseOpts)

func newOpts(opts []Option) *parseOpts {
	po := &parseOpts{
		bufferSize:     defaultBufferSize,
		maxDepth:       defaultMaxDepth,
		maxEntities:    defaultMaxEntities,
		expandEntities: true,
	}
	for _, f := range opts {
		f(po)
	}
	if po.bufferSize < 64 {
		po.bufferSize = 64
	}
	return po
}

// WithBufferSize sets the read-buffer size for streaming input.
func WithBufferSize(n int) Option {
	return func(po *parseOpts) { po.bufferSize = n }
}

// WithMaxDepth sets the maximum element nesting depth.
func WithMaxDepth(n int) Option {
	return func(po *parseOpts) { po.maxDepth = n }
}

// WithMaxEntities sets the ceiling on DOCTYPE entity declarations.
func WithMaxEntities(n int) Option {
	return func(po *parseOpts) { po.maxEntities = n }
}

// WithEntityExpansion toggles entity reference expansion in text and
// attribute values.
func WithEntityExpansion(v bool) Option {
	return func(po *parseOpts) { po.expandEntities = v }
}

// WithKeepWhitespace disables whitespace trimming everywhere, not just
// inside the preserve-whitespace elements.
func WithKeepWhitespace(v bool) Option {
	return func(po *parseOpts) { po.keepWhitespace = v }
}

// WithComments toggles comment preservation. Comments are kept by
// default; with v false they are dropped during parsing.
func WithComments(v bool) Option {
	return func(po *parseOpts) { po.dropComments = !v }
}
