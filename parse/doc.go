// Package parse provides the streaming SVG parser. It consumes a byte
// source incrementally over a bounded buffer, resolves entity references
// under hard security limits, and produces an ir.Document. Parse errors
// carry byte offset, line/column and a source-context snippet.
package parse
