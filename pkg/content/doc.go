// Package content models the page document edited by a session: a JSON object
// with page-level copy and an ordered list of blocks discriminated by the
// `_template` key. The tree is kept in its decoded form (objects, lists,
// strings and json.Number) so content authored for kinds this build does not
// know about survives a load/save cycle untouched. Dotted paths such as
// `blocks.2.left.alt` address any node; numeric segments index lists.
package content
