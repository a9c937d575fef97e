package pathdata

import "math"

// SimplifyOpts selects which transforms run and their tolerance.
type SimplifyOpts struct {
	Tolerance        float64
	RemoveRedundant  bool
	StraightenCurves bool
	FitArcs          bool
}

// Simplify applies the enabled transforms in a fixed order: straighten
// curves first so the line runs they produce are visible to redundant
// removal and arc fitting.
func Simplify(cmds []Command, opts SimplifyOpts) []Command {
	tol := opts.Tolerance
	if tol <= 0 {
		tol = 1e-3
	}
	if opts.StraightenCurves {
		cmds = StraightenCurves(cmds, tol)
	}
	if opts.RemoveRedundant {
		cmds = RemoveRedundant(cmds, tol)
	}
	if opts.FitArcs {
		cmds = FitArcs(cmds, tol)
	}
	return cmds
}

// RemoveRedundant drops line and curve segments whose endpoint coincides
// with the current point within tol. Curves are only dropped when their
// control points also coincide, so degenerate loops survive.
func RemoveRedundant(cmds []Command, tol float64) []Command {
	var out []Command
	var p point
	for _, c := range cmds {
		if isRedundant(c, p, tol) {
			continue
		}
		p.advance(c)
		out = append(out, c)
	}
	return out
}

func isRedundant(c Command, p point, tol float64) bool {
	switch c.Letter {
	case 'M', 'Z', 'A':
		return false
	}
	ex, ey := p.endpoint(c)
	if !finite(ex) || !finite(ey) {
		return false
	}
	if math.Abs(ex-p.x) > tol || math.Abs(ey-p.y) > tol {
		return false
	}
	// control points, in absolute coordinates
	for _, cp := range controlPoints(c, p) {
		if math.Abs(cp[0]-p.x) > tol || math.Abs(cp[1]-p.y) > tol {
			return false
		}
	}
	return true
}

// controlPoints returns the absolute control points of a curve command.
func controlPoints(c Command, p point) [][2]float64 {
	var rels [][2]float64
	switch c.Letter {
	case 'C':
		rels = [][2]float64{{c.Params[0], c.Params[1]}, {c.Params[2], c.Params[3]}}
	case 'S', 'Q':
		rels = [][2]float64{{c.Params[0], c.Params[1]}}
	default:
		return nil
	}
	if c.Relative {
		for i := range rels {
			rels[i][0] += p.x
			rels[i][1] += p.y
		}
	}
	return rels
}

// StraightenCurves replaces cubic and quadratic segments with lines when
// the maximum perpendicular deviation of their control points from the
// chord is below tol. Smooth continuations (S, T) depend on the previous
// segment's reflected control point and are left alone.
func StraightenCurves(cmds []Command, tol float64) []Command {
	out := make([]Command, 0, len(cmds))
	var p point
	for _, c := range cmds {
		if c.Letter == 'C' || c.Letter == 'Q' {
			ex, ey := p.endpoint(c)
			flat := true
			for _, cp := range controlPoints(c, p) {
				d := perpDistance(cp[0], cp[1], p.x, p.y, ex, ey)
				if !finite(d) || d > tol {
					flat = false
					break
				}
			}
			if flat && finite(ex) && finite(ey) {
				n := len(c.Params)
				c = Command{
					Letter:   'L',
					Relative: c.Relative,
					Params:   []float64{c.Params[n-2], c.Params[n-1]},
				}
			}
		}
		p.advance(c)
		out = append(out, c)
	}
	return out
}

// perpDistance is the distance from (px,py) to the chord (ax,ay)-(bx,by).
// A degenerate chord collapses to point distance.
func perpDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l < 1e-12 {
		return math.Hypot(px-ax, py-ay)
	}
	return math.Abs(dx*(py-ay)-dy*(px-ax)) / l
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
