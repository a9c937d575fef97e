package pathdata

import (
	"math"
	"testing"
)

// circlePath builds M + L commands sampling a circular arc.
func circlePath(cx, cy, r, from, to float64, steps int) []Command {
	cmds := []Command{{
		Letter: 'M',
		Params: []float64{cx + r*math.Cos(from), cy + r*math.Sin(from)},
	}}
	for i := 1; i <= steps; i++ {
		a := from + (to-from)*float64(i)/float64(steps)
		cmds = append(cmds, Command{
			Letter: 'L',
			Params: []float64{cx + r*math.Cos(a), cy + r*math.Sin(a)},
		})
	}
	return cmds
}

func TestFitArcsCircleSamples(t *testing.T) {
	cmds := circlePath(50, 50, 40, 0, math.Pi/2, 16)
	out := FitArcs(cmds, 0.1)
	if len(out) != 2 {
		t.Fatalf("got %d commands, want M+A: %v", len(out), out)
	}
	a := out[1]
	if a.Letter != 'A' {
		t.Fatalf("second command = %c, want A", a.Letter)
	}
	if math.Abs(a.Params[0]-40) > 0.5 {
		t.Errorf("radius = %v, want ~40", a.Params[0])
	}
	if a.Params[3] != 0 {
		t.Errorf("large-arc = %v for a quarter turn", a.Params[3])
	}
	end := cmds[len(cmds)-1].Params
	if math.Abs(a.Params[5]-end[0]) > 1e-9 || math.Abs(a.Params[6]-end[1]) > 1e-9 {
		t.Errorf("arc end = (%v,%v), want (%v,%v)", a.Params[5], a.Params[6], end[0], end[1])
	}
}

func TestFitArcsLargeSweep(t *testing.T) {
	cmds := circlePath(0, 0, 10, 0, 3*math.Pi/2, 24)
	out := FitArcs(cmds, 0.1)
	if len(out) != 2 || out[1].Letter != 'A' {
		t.Fatalf("got %v", out)
	}
	if out[1].Params[3] != 1 {
		t.Errorf("large-arc = %v for a three-quarter turn", out[1].Params[3])
	}
}

func TestFitArcsSweepDirection(t *testing.T) {
	ccw := circlePath(0, 0, 10, 0, math.Pi/2, 8)
	cw := circlePath(0, 0, 10, math.Pi/2, 0, 8)
	outCCW := FitArcs(ccw, 0.1)
	outCW := FitArcs(cw, 0.1)
	if len(outCCW) != 2 || len(outCW) != 2 {
		t.Fatalf("fits failed: %v / %v", outCCW, outCW)
	}
	if outCCW[1].Params[4] == outCW[1].Params[4] {
		t.Errorf("sweep flags equal for opposite directions")
	}
}

func TestFitArcsRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"square corners", "M0 0 L10 0 L10 10 L0 10 L0 0"},
		{"collinear run", "M0 0 L1 0 L2 0 L3 0 L4 0"},
		{"too few points", "M0 0 L10 0 L10 10"},
	}
	for _, tc := range tests {
		cmds := mustParse(t, tc.in)
		out := FitArcs(cmds, 0.1)
		for _, c := range out {
			if c.Letter == 'A' {
				t.Errorf("%s: arc fitted: %v", tc.name, out)
			}
		}
	}
}

func TestFitArcsRejectsFullTurn(t *testing.T) {
	// a closed circle never collapses to one arc; the run splits so the
	// swept angle stays under a full turn
	cmds := circlePath(0, 0, 10, 0, 2*math.Pi, 32)
	out := FitArcs(cmds, 0.1)
	if len(out) <= 2 {
		t.Errorf("full turn fitted as a single arc: %v", out)
	}
}
