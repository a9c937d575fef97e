// Package passes holds the built-in optimization passes. Each pass
// registers itself with the pass registry from an init function, so
// importing this package (usually blank) makes the standard set
// available to a runner.
package passes
