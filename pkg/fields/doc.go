// Package fields declares editable properties of a block: a dotted name
// relative to the block object, a label, the widget used to edit it, an
// optional closed option set and the image hooks (parse, upload directory and
// preview source). Widget resolution fills in widgets left empty by a
// declaration using priority matchers.
package fields
