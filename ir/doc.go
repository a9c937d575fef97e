// Package ir defines the document tree for SVG optimization: a Document
// with prologue/epilogue nodes around a single root Element, and the
// closed set of node kinds produced by the parser and consumed by the
// stringifier.
package ir
