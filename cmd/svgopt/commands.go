package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/vecdoc/svgopt/debug"
	"github.com/vecdoc/svgopt/features"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "svgopt").
		WithSynopsis("svgopt [opts] command [opts]").
		WithDescription("svgopt optimizes SVG documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return svgoptMain(cfg, cc, args)
		}).
		WithSubs(
			OptimizeCommand(cfg),
			ViewCommand(cfg),
			PassesCommand(cfg))
}

func svgoptMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Debug {
		features.Set(features.DebugMode, true)
		debug.SetAll(true)
	}
	if cfg.Profile {
		features.Set(features.Profiling, true)
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func OptimizeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OptimizeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Optimize, "optimize").
		WithAliases("opt", "o").
		WithSynopsis("optimize [opts] [files]").
		WithDescription("Optimize SVG files, or stdin when no file is given.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return optimize(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("Pretty-print SVG files with color on a terminal.").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func PassesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PassesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Passes, "passes").
		WithAliases("p").
		WithSynopsis("passes").
		WithDescription("List the registered optimization passes.").
		WithRun(func(cc *cli.Context, args []string) error {
			return listPasses(cfg, cc, args)
		})
}
