// Package pathdata parses the mini-language of SVG path-drawing
// attributes into typed commands, stringifies commands back to compact
// form, and provides numeric simplification transforms: redundant-segment
// removal, curve straightening and circular-arc fitting.
package pathdata
