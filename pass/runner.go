package pass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vecdoc/svgopt/debug"
	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/visit"
)

// Instance names a pass and its configured parameters.
type Instance struct {
	Name   string
	Params json.RawMessage
}

// maxRounds caps multipass iteration when the document keeps changing.
const maxRounds = 10

// ErrBadParams marks pass parameter validation failures.
var ErrBadParams = errors.New("bad pass parameters")

type Runner struct {
	stages    [3][]Pass
	workers   int
	multipass bool
}

type RunnerOption func(*Runner)

// RunParallel sets the worker count for the Element stage. With more
// than one worker, independent top-level subtrees are dispatched
// concurrently. Documents containing use elements or href references
// fall back to sequential execution.
func RunParallel(workers int) RunnerOption {
	return func(r *Runner) { r.workers = workers }
}

// RunMultipass repeats the whole pipeline until no pass reports a
// change, up to an internal round cap.
func RunMultipass(v bool) RunnerOption {
	return func(r *Runner) { r.multipass = v }
}

// NewRunner resolves instances against the registry. Unknown names are
// skipped: a pipeline shared across tool versions may name passes this
// build does not have. Parameter validation errors fail construction.
func NewRunner(insts []Instance, opts ...RunnerOption) (*Runner, error) {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	for _, inst := range insts {
		f, ok := Lookup(inst.Name)
		if !ok {
			if debug.Pass() {
				debug.Logf("skipping unknown pass %q\n", inst.Name)
			}
			continue
		}
		p := f()
		if err := p.ValidateParams(inst.Params); err != nil {
			return nil, fmt.Errorf("pass %q: %w: %w", inst.Name, ErrBadParams, err)
		}
		r.stages[p.Category()] = append(r.stages[p.Category()], p)
	}
	return r, nil
}

// PassResult records one application of one pass.
type PassResult struct {
	Name    string
	Changed bool
}

// Report describes a full pipeline run.
type Report struct {
	Rounds  int
	Changed bool
	Passes  []PassResult
}

// Run applies the pipeline to doc: Global, then Element, then Cleanup.
func (r *Runner) Run(doc *ir.Document) (*Report, error) {
	rep := &Report{}
	rounds := 1
	if r.multipass {
		rounds = maxRounds
	}
	for round := 0; round < rounds; round++ {
		rep.Rounds++
		changed, err := r.runRound(doc, rep)
		if err != nil {
			return rep, err
		}
		if changed {
			rep.Changed = true
		}
		if !changed {
			break
		}
	}
	return rep, nil
}

func (r *Runner) runRound(doc *ir.Document, rep *Report) (bool, error) {
	changed := false
	for cat, stage := range r.stages {
		par := Category(cat) == Element && r.workers > 1 && parallelizable(stage) && !hasCrossRefs(doc)
		if par {
			if debug.Sched() {
				debug.Logf("dispatching %d element passes over %d workers\n", len(stage), r.workers)
			}
			ch, results, err := runElementsParallel(doc, stage, r.workers)
			rep.Passes = append(rep.Passes, results...)
			if err != nil {
				return changed, err
			}
			changed = changed || ch
			continue
		}
		for _, p := range stage {
			if debug.Pass() {
				debug.Logf("applying %s pass %s\n", p.Category(), p.Name())
			}
			before := debug.Snapshot(doc)
			ch, err := p.Apply(doc)
			if err != nil {
				return changed, fmt.Errorf("pass %q: %w", p.Name(), err)
			}
			debug.DiffSnapshot(p.Name(), before, doc)
			rep.Passes = append(rep.Passes, PassResult{Name: p.Name(), Changed: ch})
			changed = changed || ch
		}
	}
	return changed, nil
}

func parallelizable(stage []Pass) bool {
	for _, p := range stage {
		if _, ok := p.(ElementVisitor); !ok {
			return false
		}
	}
	return true
}

// hasCrossRefs reports whether the document links elements across the
// tree. Such links break the independence assumption behind subtree
// dispatch.
func hasCrossRefs(doc *ir.Document) bool {
	found := false
	var scan func(el *ir.Element)
	scan = func(el *ir.Element) {
		if found {
			return
		}
		if el.Name == "use" || el.HasAttr("href") || el.HasAttr("xlink:href") {
			found = true
			return
		}
		for _, c := range el.ChildElements() {
			scan(c)
		}
	}
	scan(doc.Root)
	return found
}

// runElementsParallel applies every pass of the stage to each top-level
// subtree, one goroutine per subtree. The root element itself is
// visited first, sequentially. The first error stops further dispatch;
// in-flight subtrees finish and their work is discarded with the run.
func runElementsParallel(doc *ir.Document, stage []Pass, workers int) (bool, []PassResult, error) {
	visitors := make([]ElementVisitor, len(stage))
	perPass := make([]bool, len(stage))
	for i, p := range stage {
		visitors[i] = p.(ElementVisitor)
	}
	skip := make([]bool, len(stage))
	for i, ev := range visitors {
		ch, err := ev.VisitElement(doc.Root, nil)
		switch err {
		case nil:
		case visit.Remove:
			// the root is never detached; its subtree is still skipped
			ch = true
			skip[i] = true
		case visit.SkipChildren:
			skip[i] = true
		default:
			return false, nil, fmt.Errorf("pass %q: %w", ev.Name(), err)
		}
		perPass[i] = perPass[i] || ch
	}

	root := doc.Root
	removed := make([]bool, len(root.Children))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(workers)
	for i := range root.Children {
		el, ok := root.Children[i].(*ir.Element)
		if !ok {
			continue
		}
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			for pi, ev := range visitors {
				if skip[pi] {
					continue
				}
				ch, rm, err := visitSubtree(el, root, ev)
				if err != nil {
					return fmt.Errorf("pass %q: %w", ev.Name(), err)
				}
				if ch || rm {
					mu.Lock()
					perPass[pi] = true
					mu.Unlock()
				}
				if rm {
					removed[i] = true
					break
				}
			}
			return nil
		})
	}
	err := g.Wait()

	out := root.Children[:0]
	for i, c := range root.Children {
		if removed[i] {
			continue
		}
		out = append(out, c)
	}
	root.Children = out

	changed := false
	results := make([]PassResult, len(stage))
	for i, p := range stage {
		results[i] = PassResult{Name: p.Name(), Changed: perPass[i]}
		changed = changed || perPass[i]
	}
	return changed, results, err
}

// visitSubtree mirrors the visitor walk for elements only: children are
// visited up to the count present on entry and removals are applied
// after the loop.
func visitSubtree(el, parent *ir.Element, ev ElementVisitor) (changed, removed bool, err error) {
	ch, err := ev.VisitElement(el, parent)
	changed = ch
	switch err {
	case nil:
	case visit.Remove:
		return true, true, nil
	case visit.SkipChildren:
		return changed, false, nil
	default:
		return changed, false, err
	}
	n := len(el.Children)
	var drop []int
	for i := 0; i < n; i++ {
		c, ok := el.Children[i].(*ir.Element)
		if !ok {
			continue
		}
		ch, rm, err := visitSubtree(c, el, ev)
		if ch {
			changed = true
		}
		if err != nil {
			return changed, false, err
		}
		if rm {
			changed = true
			drop = append(drop, i)
		}
	}
	if len(drop) > 0 {
		out := el.Children[:0]
		di := 0
		for i, c := range el.Children {
			if di < len(drop) && drop[di] == i {
				di++
				continue
			}
			out = append(out, c)
		}
		el.Children = out
	}
	return changed, false, nil
}

// ApplyVisitor runs ev over every element of doc through the visitor
// framework. It is the standard Apply implementation for
// Element-category passes.
func ApplyVisitor(doc *ir.Document, ev ElementVisitor) (bool, error) {
	a := &visitorAdapter{ev: ev}
	if err := visit.Walk(doc, a); err != nil {
		return a.changed, err
	}
	return a.changed, nil
}

type visitorAdapter struct {
	visit.Base
	ev      ElementVisitor
	changed bool
}

func (a *visitorAdapter) ElementEnter(el, parent *ir.Element) error {
	ch, err := a.ev.VisitElement(el, parent)
	if ch || err == visit.Remove {
		a.changed = true
	}
	return err
}
