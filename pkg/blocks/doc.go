// Package blocks holds the block template registry: for every block kind a
// label, a default payload and the editable fields. Templates may own nested
// block lists governed by a narrower registry (a feature list holds feature
// items). PageSchema ties the page-level fields and the root block registry
// together and binds dotted paths in a document to field descriptors.
package blocks
