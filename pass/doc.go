// Package pass defines optimization passes and runs them over documents.
//
// # Overview
//
// A pass is a named, parameterized document transform. Passes register
// themselves by name in a package-level registry; a Runner resolves a
// configured pipeline of names against the registry and applies it.
//
// Passes are divided into three categories that fix execution order:
//
//   - Global: whole-document analysis and rewriting
//   - Element: per-element rewriting via the visitor
//   - Cleanup: passes that tidy after the others
//
// All Global passes run before all Element passes, which run before all
// Cleanup passes, regardless of configuration order. Within a category,
// configuration order is kept.
//
// Element passes see one element at a time and may be dispatched over
// independent top-level subtrees concurrently when the runner's
// parallel mode is on.
package pass
