package parse

import (
	"fmt"
	"sort"
	"strconv"
)

// posDoc records the absolute offsets of newlines seen so far. In
// streaming mode the document itself is gone by the time an error is
// reported, so positions keep a context snippet instead of an index into
// the full input.
type posDoc struct {
	nl []int64
}

func (p *posDoc) mark(off int64) {
	if n := len(p.nl); n > 0 && p.nl[n-1] == off {
		return
	}
	p.nl = append(p.nl, off)
}

// lineCol maps an absolute offset to 0-based line and column.
func (p *posDoc) lineCol(off int64) (int, int) {
	n := len(p.nl)
	i := sort.Search(n, func(i int) bool {
		return p.nl[i] >= off
	})
	if i == 0 {
		return 0, int(off)
	}
	return i, int(off - p.nl[i-1] - 1)
}

// Pos is a position in the input stream.
type Pos struct {
	Offset int64
	Line   int // 0-based
	Col    int // 0-based
	// Context is a short snippet of input around the position, captured
	// at error time.
	Context string
}

func (p Pos) String() string {
	sample := p.Context
	if sample == "" {
		sample = "?"
	}
	q := strconv.Quote(sample)
	q = q[1 : len(q)-1]
	return fmt.Sprintf("`...%s...` at offset %d (line=%d, col=%d)", q, p.Offset, p.Line, p.Col)
}
