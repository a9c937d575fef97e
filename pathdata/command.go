package pathdata

// Command is one path drawing instruction. Letter is the canonical
// uppercase command kind; Relative records whether the source used the
// lowercase form. Params holds exactly one arity worth of parameters:
// the parser expands repeated groups into separate Commands.
type Command struct {
	Letter   byte
	Relative bool
	Params   []float64
}

// Arity returns the parameter count one repetition of a command letter
// consumes. Unknown letters return -1.
func Arity(letter byte) int {
	switch letter {
	case 'M', 'L', 'T':
		return 2
	case 'H', 'V':
		return 1
	case 'C':
		return 6
	case 'S', 'Q':
		return 4
	case 'A':
		return 7
	case 'Z':
		return 0
	}
	return -1
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCommandLetter(c byte) bool {
	return Arity(upper(c)) >= 0
}

// point tracks the current position and subpath start while walking a
// command sequence in absolute coordinates.
type point struct {
	x, y   float64
	sx, sy float64
}

// endpoint returns the absolute endpoint of c applied at p.
func (p point) endpoint(c Command) (float64, float64) {
	switch c.Letter {
	case 'Z':
		return p.sx, p.sy
	case 'H':
		if c.Relative {
			return p.x + c.Params[0], p.y
		}
		return c.Params[0], p.y
	case 'V':
		if c.Relative {
			return p.x, p.y + c.Params[0]
		}
		return p.x, c.Params[0]
	}
	n := len(c.Params)
	ex, ey := c.Params[n-2], c.Params[n-1]
	if c.Relative {
		return p.x + ex, p.y + ey
	}
	return ex, ey
}

// advance moves p across c.
func (p *point) advance(c Command) {
	ex, ey := p.endpoint(c)
	p.x, p.y = ex, ey
	if c.Letter == 'M' {
		p.sx, p.sy = ex, ey
	}
}
