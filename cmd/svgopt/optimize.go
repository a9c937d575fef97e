package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/vecdoc/svgopt"
	"github.com/vecdoc/svgopt/config"
)

func optimize(cfg *OptimizeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Optimize.Parse(cc, args)
	if err != nil {
		cfg.Optimize.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	conf, err := cfg.loadConfig()
	if err != nil {
		return err
	}
	if cfg.Pretty {
		conf.Pretty = true
	}
	if cfg.Multipass {
		conf.Multipass = true
	}
	if cfg.Parallel > 0 {
		conf.Parallel = cfg.Parallel
	}
	if cfg.Datauri != "" {
		conf.Datauri = cfg.Datauri
	}

	if cfg.Folder != "" {
		if len(args) > 0 {
			return fmt.Errorf("%w: -folder and file arguments are exclusive", cli.ErrUsage)
		}
		return optimizeFolder(cfg, conf, cfg.Folder)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := optimizeArg(cfg, conf, cc.Out, arg); err != nil {
			return fmt.Errorf("error optimizing %s: %w", arg, err)
		}
	}
	return nil
}

func optimizeArg(cfg *OptimizeConfig, conf *config.Config, w io.Writer, arg string) error {
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
	res, err := svgopt.Optimize(input, conf)
	if err != nil {
		return err
	}
	if _, err := w.Write(res.Data); err != nil {
		return err
	}
	if cfg.Stats {
		printStats(arg, res)
	}
	return nil
}

// optimizeFolder rewrites every .svg under dir in place.
func optimizeFolder(cfg *OptimizeConfig, conf *config.Config, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".svg") {
			return nil
		}
		input, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		res, err := svgopt.Optimize(input, conf)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := os.WriteFile(path, res.Data, 0644); err != nil {
			return err
		}
		if cfg.Stats {
			printStats(path, res)
		}
		return nil
	})
}

func printStats(name string, res *svgopt.Result) {
	fmt.Fprintf(os.Stderr, "%s: %d -> %d bytes (%.1f%%)\n",
		name, res.Info.OriginalSize, res.Info.OptimizedSize, res.Info.Ratio*100)
}
