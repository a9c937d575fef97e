package pathdata

import "math"

// FitArcs replaces runs of consecutive line segments that trace a circle
// with a single elliptical-arc command. A run qualifies when a
// least-squares circle fit (Kasa method) over the run's points has
// maximum residual below tol at both vertices and segment midpoints,
// the points progress monotonically around the center, and the swept
// angle stays under a full turn. The midpoint check bounds the sagitta,
// so sparse polygons whose vertices happen to be concyclic do not fit.
// Runs that fail any check, or whose fit degenerates to NaN/Inf, are
// kept as-is.
func FitArcs(cmds []Command, tol float64) []Command {
	var out []Command
	var p point
	i := 0
	for i < len(cmds) {
		c := cmds[i]
		if c.Letter != 'L' {
			p.advance(c)
			out = append(out, c)
			i++
			continue
		}
		// collect the maximal run of line segments from the current point
		pts := [][2]float64{{p.x, p.y}}
		run := p
		j := i
		for j < len(cmds) && cmds[j].Letter == 'L' {
			ex, ey := run.endpoint(cmds[j])
			if !finite(ex) || !finite(ey) {
				break
			}
			pts = append(pts, [2]float64{ex, ey})
			run.advance(cmds[j])
			j++
		}
		if arc, ok := fitArc(pts, tol); ok {
			out = append(out, arc)
			p = run
			i = j
			continue
		}
		p.advance(c)
		out = append(out, c)
		i++
	}
	return out
}

const minArcPoints = 4

// fitArc fits a circle through pts and builds the replacement arc.
func fitArc(pts [][2]float64, tol float64) (Command, bool) {
	if len(pts) < minArcPoints {
		return Command{}, false
	}
	cx, cy, r, ok := fitCircle(pts)
	if !ok || !finite(cx) || !finite(cy) || !finite(r) || r < tol {
		return Command{}, false
	}
	for _, pt := range pts {
		res := math.Abs(math.Hypot(pt[0]-cx, pt[1]-cy) - r)
		if !finite(res) || res > tol {
			return Command{}, false
		}
	}
	for k := 0; k+1 < len(pts); k++ {
		mx := (pts[k][0] + pts[k+1][0]) / 2
		my := (pts[k][1] + pts[k+1][1]) / 2
		res := math.Abs(math.Hypot(mx-cx, my-cy) - r)
		if !finite(res) || res > tol {
			return Command{}, false
		}
	}
	// angular progression must be monotonic and under a full turn
	total := 0.0
	var dir float64
	prev := math.Atan2(pts[0][1]-cy, pts[0][0]-cx)
	for _, pt := range pts[1:] {
		a := math.Atan2(pt[1]-cy, pt[0]-cx)
		d := a - prev
		for d > math.Pi {
			d -= 2 * math.Pi
		}
		for d < -math.Pi {
			d += 2 * math.Pi
		}
		if d == 0 {
			return Command{}, false
		}
		if dir == 0 {
			dir = math.Copysign(1, d)
		} else if math.Copysign(1, d) != dir {
			return Command{}, false
		}
		total += d
		prev = a
	}
	if math.Abs(total) >= 2*math.Pi-1e-6 {
		return Command{}, false
	}
	largeArc := 0.0
	if math.Abs(total) > math.Pi {
		largeArc = 1
	}
	sweep := 0.0
	if dir > 0 {
		sweep = 1
	}
	end := pts[len(pts)-1]
	return Command{
		Letter: 'A',
		Params: []float64{r, r, 0, largeArc, sweep, end[0], end[1]},
	}, true
}

// fitCircle solves the Kasa linear least-squares system for
// x^2 + y^2 + D*x + E*y + F = 0.
func fitCircle(pts [][2]float64) (cx, cy, r float64, ok bool) {
	var sxx, sxy, syy, sx, sy, sxz, syz, sz float64
	n := float64(len(pts))
	for _, p := range pts {
		x, y := p[0], p[1]
		z := x*x + y*y
		sxx += x * x
		sxy += x * y
		syy += y * y
		sx += x
		sy += y
		sxz += x * z
		syz += y * z
		sz += z
	}
	// normal equations for D, E, F
	m := [3][4]float64{
		{sxx, sxy, sx, -sxz},
		{sxy, syy, sy, -syz},
		{sx, sy, n, -sz},
	}
	sol, ok := solve3(m)
	if !ok {
		return 0, 0, 0, false
	}
	d, e, f := sol[0], sol[1], sol[2]
	cx = -d / 2
	cy = -e / 2
	rr := cx*cx + cy*cy - f
	if rr <= 0 || !finite(rr) {
		return 0, 0, 0, false
	}
	return cx, cy, math.Sqrt(rr), true
}

// solve3 runs Gaussian elimination with partial pivoting on a 3x4
// augmented system.
func solve3(m [3][4]float64) ([3]float64, bool) {
	for col := 0; col < 3; col++ {
		piv := col
		for row := col + 1; row < 3; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[piv][col]) {
				piv = row
			}
		}
		if math.Abs(m[piv][col]) < 1e-12 {
			return [3]float64{}, false
		}
		m[col], m[piv] = m[piv], m[col]
		for row := col + 1; row < 3; row++ {
			f := m[row][col] / m[col][col]
			for k := col; k < 4; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}
	var sol [3]float64
	for row := 2; row >= 0; row-- {
		v := m[row][3]
		for k := row + 1; k < 3; k++ {
			v -= m[row][k] * sol[k]
		}
		sol[row] = v / m[row][row]
	}
	return sol, true
}
