// Package schema exports a page schema as an OpenAPI 3 document. Block lists
// become `oneOf` unions discriminated by `_template`; widget and label
// metadata is carried in `x-pageblocks` extensions.
package schema
