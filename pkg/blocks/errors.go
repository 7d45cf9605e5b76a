package blocks

import "errors"

var (
	// ErrConfig reports an invalid template declaration.
	ErrConfig = errors.New("blocks: invalid template configuration")
	// ErrUnknownKind reports a block kind without a registered template.
	ErrUnknownKind = errors.New("blocks: unknown block kind")
	// ErrUnknownField reports a path that does not bind to a declared field.
	ErrUnknownField = errors.New("blocks: unknown field")
)
