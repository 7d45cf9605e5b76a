// Package prompt is a terminal editor for a page session. Questions go
// through a Driver so flows can be scripted in tests; the default driver is
// backed by survey.
package prompt
