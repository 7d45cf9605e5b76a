// Package render turns a page into positioned nodes and defines the renderer
// contract shared by the HTML and terminal renderers.
//
// Walk visits the root block list and every nested list in document order.
// Each node carries its Position (list path, index and block path) so
// renderers and field hooks receive their parent context explicitly. Blocks
// whose kind is not registered for their list come back with Err set; they
// are never dropped from the walk so hosts can report them.
package render
