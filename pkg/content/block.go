package content

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Block is a positioned view over one block object inside a page. Data is the
// live object from the document: writes through it mutate the page.
type Block struct {
	Kind  Kind
	List  Path
	Index int
	Data  map[string]any
}

// Path addresses the block itself (`List.Index`).
func (b Block) Path() Path {
	return b.List.Index(b.Index)
}

// Value looks up a dotted path relative to the block.
func (b Block) Value(rel Path) (any, bool) {
	if b.Data == nil {
		return nil, false
	}
	value, err := Lookup(b.Data, rel)
	if err != nil {
		return nil, false
	}
	return value, true
}

// String returns the string at the relative dotted path, or "".
func (b Block) String(rel string) string {
	path, err := ParsePath(rel)
	if err != nil {
		return ""
	}
	value, ok := b.Value(path)
	if !ok {
		return ""
	}
	text, _ := value.(string)
	return text
}

// Decode fills out (a struct pointer with json tags) from the block data.
func (b Block) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("content: block decoder: %w", err)
	}
	if err := decoder.Decode(b.Data); err != nil {
		return fmt.Errorf("content: decode %s block at %q: %w", b.Kind, b.Path().String(), err)
	}
	return nil
}

// BlocksOf builds block views over a decoded list. Items that are not objects
// produce a view with an empty kind so callers can report them.
func BlocksOf(list Path, items []any) []Block {
	out := make([]Block, 0, len(items))
	for idx, item := range items {
		data, _ := item.(map[string]any)
		out = append(out, Block{
			Kind:  KindOf(data),
			List:  list.Join(),
			Index: idx,
			Data:  data,
		})
	}
	return out
}
