// Package encode serializes document trees back to SVG markup.
//
// # Usage
//
//	// Compact output
//	err := encode.Encode(doc, w)
//
//	// Pretty-printed output
//	err := encode.Encode(doc, w, encode.EncodePretty(true), encode.EncodeIndent("  "))
//
// # Related Packages
//
//   - github.com/vecdoc/svgopt/ir - document tree
//   - github.com/vecdoc/svgopt/parse - parse markup to a tree
package encode
