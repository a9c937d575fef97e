// Package svgopt optimizes SVG documents: it parses markup into a
// tree, runs a configured pipeline of passes over it and serializes the
// result.
package svgopt

import (
	"bytes"
	"runtime"

	"github.com/vecdoc/svgopt/config"
	"github.com/vecdoc/svgopt/encode"
	"github.com/vecdoc/svgopt/features"
	"github.com/vecdoc/svgopt/ir"
	"github.com/vecdoc/svgopt/parse"
	"github.com/vecdoc/svgopt/pass"
	_ "github.com/vecdoc/svgopt/passes"
)

// Info describes what an optimization run did.
type Info struct {
	// OriginalSize and OptimizedSize are markup byte counts, before any
	// data-URI conversion.
	OriginalSize  int
	OptimizedSize int
	// Ratio is OptimizedSize over OriginalSize.
	Ratio float64
	// Passes counts pass applications; Rounds counts multipass rounds.
	Passes int
	Rounds int
}

// Result is the outcome of one optimization run.
type Result struct {
	Data []byte
	Info Info
}

// Parse builds a document tree from markup. It is a convenience
// wrapper around the parse package.
func Parse(input []byte, opts ...parse.Option) (*ir.Document, error) {
	return parse.Parse(input, opts...)
}

// Stringify serializes a document to markup. It is a convenience
// wrapper around the encode package.
func Stringify(doc *ir.Document, opts ...encode.EncodeOption) (string, error) {
	return encode.String(doc, opts...)
}

// Optimize runs the full pipeline on input under cfg. A nil cfg means
// the built-in defaults. Parse options tune input limits.
func Optimize(input []byte, cfg *config.Config, popts ...parse.Option) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	var doc *ir.Document
	var err error
	if features.Enabled(features.StreamingParser) {
		doc, err = parse.ParseReader(bytes.NewReader(input), popts...)
	} else {
		doc, err = parse.Parse(input, popts...)
	}
	if err != nil {
		return nil, err
	}
	res, err := OptimizeDocument(doc, cfg)
	if err != nil {
		return nil, err
	}
	res.Info.OriginalSize = len(input)
	if res.Info.OriginalSize > 0 {
		res.Info.Ratio = float64(res.Info.OptimizedSize) / float64(res.Info.OriginalSize)
	}
	return res, nil
}

// OptimizeDocument runs the pipeline on an already parsed document,
// mutating it in place. Info's original size and ratio are left for the
// caller, which knows the input bytes.
func OptimizeDocument(doc *ir.Document, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	workers := cfg.Parallel
	if workers < 2 && features.Enabled(features.ParallelDispatch) {
		workers = runtime.GOMAXPROCS(0)
	}
	runner, err := pass.NewRunner(cfg.Instances(),
		pass.RunParallel(workers),
		pass.RunMultipass(cfg.Multipass),
	)
	if err != nil {
		return nil, err
	}
	rep, err := runner.Run(doc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := encode.Encode(doc, &buf, cfg.EncodeOptions()...); err != nil {
		return nil, err
	}
	data := buf.Bytes()
	res := &Result{
		Data: data,
		Info: Info{
			OptimizedSize: len(data),
			Passes:        len(rep.Passes),
			Rounds:        rep.Rounds,
		},
	}
	if cfg.Datauri != "" {
		uri, err := EncodeDataURI(data, cfg.Datauri)
		if err != nil {
			return nil, err
		}
		res.Data = []byte(uri)
	}
	return res, nil
}
