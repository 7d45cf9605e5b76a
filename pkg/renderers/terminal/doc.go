// Package terminal renders pages as styled terminal text. Blocks are turned
// into markdown by per-kind handlers and the document is styled with glamour.
package terminal
