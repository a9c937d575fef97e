package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Pass     bool
	PassDiff bool
	Config   bool
	Sched    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("SVGOPT_DEBUG_PARSE")
	d.Pass = boolEnv("SVGOPT_DEBUG_PASS")
	d.PassDiff = boolEnv("SVGOPT_DEBUG_PASS_DIFF")
	d.Config = boolEnv("SVGOPT_DEBUG_CONFIG")
	d.Sched = boolEnv("SVGOPT_DEBUG_SCHED")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// SetAll turns every debug flag on or off, overriding the environment.
func SetAll(on bool) {
	d.Parse = on
	d.Pass = on
	d.PassDiff = on
	d.Config = on
	d.Sched = on
}

func Parse() bool {
	return d.Parse
}
func Pass() bool {
	return d.Pass
}
func PassDiff() bool {
	return d.PassDiff
}
func Config() bool {
	return d.Config
}
func Sched() bool {
	return d.Sched
}
