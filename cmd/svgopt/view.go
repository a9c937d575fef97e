package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/vecdoc/svgopt/encode"
	"github.com/vecdoc/svgopt/parse"
	"github.com/vecdoc/svgopt/pass"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := []encode.EncodeOption{
		encode.EncodePretty(true),
		encode.EncodeFinalNewline(true),
	}
	if c := encode.AutoColors(os.Stdout); c != nil && cfg.Out == "" {
		opts = append(opts, encode.EncodeColors(c))
	}
	for _, arg := range args {
		var input []byte
		var err error
		if arg == "-" {
			input, err = io.ReadAll(os.Stdin)
		} else {
			input, err = os.ReadFile(arg)
		}
		if err != nil {
			return err
		}
		doc, err := parse.Parse(input)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
		if err := encode.Encode(doc, cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}

func listPasses(cfg *PassesConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Passes.Parse(cc, args); err != nil {
		return err
	}
	for _, name := range pass.Names() {
		f, _ := pass.Lookup(name)
		p := f()
		fmt.Fprintf(cc.Out, "%-24s %s\n", name, p.Category())
	}
	return nil
}
