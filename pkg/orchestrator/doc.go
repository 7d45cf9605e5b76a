// Package orchestrator runs the pipeline from a content store to rendered
// output: load and decode the document, pick a renderer from the registry,
// resolve the theme, render. It also validates documents and writes static
// builds.
package orchestrator
