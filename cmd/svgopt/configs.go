package main

import (
	"os"

	"github.com/scott-cotton/cli"

	"github.com/vecdoc/svgopt/config"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='configuration file (default: discovered from cwd)'"`
	Profile    bool   `cli:"name=profile desc='start the diagnostics agent'"`
	Debug      bool   `cli:"name=debug desc='enable all debug tracing'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// loadConfig resolves the effective configuration: the explicit file if
// given, a discovered file otherwise, defaults when neither exists.
func (cfg *MainConfig) loadConfig() (*config.Config, error) {
	if cfg.ConfigFile != "" {
		return config.Load(cfg.ConfigFile)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	if p := config.Discover(wd); p != "" {
		return config.Load(p)
	}
	return config.Default(), nil
}

type OptimizeConfig struct {
	*MainConfig
	Pretty    bool   `cli:"name=pretty desc='pretty-print output'"`
	Multipass bool   `cli:"name=multipass desc='repeat passes until stable'"`
	Parallel  int    `cli:"name=parallel desc='worker count for concurrent subtree dispatch'"`
	Folder    string `cli:"name=folder desc='optimize every .svg under a directory, in place'"`
	Datauri   string `cli:"name=datauri desc='emit a data URI: base64, enc or unenc'"`
	Stats     bool   `cli:"name=stats desc='print size statistics to stderr'"`

	Optimize *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type PassesConfig struct {
	*MainConfig
	Passes *cli.Command
}
