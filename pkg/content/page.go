package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mohae/deepcopy"
)

// Page-level keys of the document.
const (
	HeadlineKey = "headline"
	SubtextKey  = "subtext"
	BlocksKey   = "blocks"
)

// ErrDocument reports content that is not a JSON object.
var ErrDocument = errors.New("content: document must be a JSON object")

// BlocksPath addresses the root block list.
var BlocksPath = Path{BlocksKey}

// Page wraps the decoded document tree.
type Page struct {
	root map[string]any
}

// NewPage returns an empty page with the root keys present.
func NewPage() *Page {
	return &Page{root: map[string]any{
		HeadlineKey: "",
		SubtextKey:  "",
		BlocksKey:   []any{},
	}}
}

// FromValues wraps an existing tree. The map is used as-is.
func FromValues(values map[string]any) *Page {
	if values == nil {
		return NewPage()
	}
	return &Page{root: values}
}

// Decode parses a JSON document. Numbers are kept as json.Number so encoding
// reproduces them exactly.
func Decode(data []byte) (*Page, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("content: decode document: %w", err)
	}
	root, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrDocument
	}
	if blocks, exists := root[BlocksKey]; exists {
		if _, ok := blocks.([]any); !ok {
			return nil, fmt.Errorf("%w: %q must be a list", ErrDocument, BlocksKey)
		}
	}
	return &Page{root: root}, nil
}

// Encode serialises the document with two-space indentation and a trailing
// newline. Object keys are emitted in sorted order, so the output is stable.
func (p *Page) Encode() ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(p.root); err != nil {
		return nil, fmt.Errorf("content: encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	copied, _ := deepcopy.Copy(p.root).(map[string]any)
	if copied == nil {
		copied = map[string]any{}
	}
	return &Page{root: copied}
}

// Values exposes the live tree. Callers must not retain it across edits.
func (p *Page) Values() map[string]any {
	return p.root
}

// Get resolves a path against the document.
func (p *Page) Get(path Path) (any, error) {
	return Lookup(p.root, path)
}

// String returns the string at path, or "".
func (p *Page) String(path Path) string {
	value, err := p.Get(path)
	if err != nil {
		return ""
	}
	text, _ := value.(string)
	return text
}

// Set writes value at path.
func (p *Page) Set(path Path, value any) error {
	return Assign(p.root, path, value)
}

func (p *Page) Headline() string {
	return p.String(Path{HeadlineKey})
}

func (p *Page) Subtext() string {
	return p.String(Path{SubtextKey})
}

// List returns the list addressed by path. A missing root block list reads as
// empty.
func (p *Page) List(path Path) ([]any, error) {
	value, err := p.Get(path)
	if err != nil {
		if path.Equal(BlocksPath) {
			return nil, nil
		}
		return nil, err
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a list", ErrPath, path.String())
	}
	return items, nil
}

// Blocks returns positioned views over the list at path.
func (p *Page) Blocks(list Path) ([]Block, error) {
	items, err := p.List(list)
	if err != nil {
		return nil, err
	}
	return BlocksOf(list, items), nil
}

// Block returns the view of one block addressed by its path (`list.index`).
func (p *Page) Block(path Path) (Block, error) {
	if len(path) < 2 {
		return Block{}, fmt.Errorf("%w: %q does not address a block", ErrPath, path.String())
	}
	idx, ok := indexSegment(path.Last())
	if !ok {
		return Block{}, fmt.Errorf("%w: %q does not address a block", ErrPath, path.String())
	}
	items, err := p.List(path.Parent())
	if err != nil {
		return Block{}, err
	}
	if idx >= len(items) {
		return Block{}, fmt.Errorf("%w: %q", ErrPathNotFound, path.String())
	}
	data, _ := items[idx].(map[string]any)
	return Block{Kind: KindOf(data), List: path.Parent(), Index: idx, Data: data}, nil
}

// Insert places item at index in the list; out-of-range indexes append.
func (p *Page) Insert(list Path, index int, item map[string]any) error {
	items, err := p.List(list)
	if err != nil {
		return err
	}
	if index < 0 || index > len(items) {
		index = len(items)
	}
	updated := make([]any, 0, len(items)+1)
	updated = append(updated, items[:index]...)
	updated = append(updated, item)
	updated = append(updated, items[index:]...)
	return p.Set(list, updated)
}

// Remove deletes the item at index and returns it.
func (p *Page) Remove(list Path, index int) (any, error) {
	items, err := p.List(list)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: %q", ErrPathNotFound, list.Index(index).String())
	}
	removed := items[index]
	updated := make([]any, 0, len(items)-1)
	updated = append(updated, items[:index]...)
	updated = append(updated, items[index+1:]...)
	return removed, p.Set(list, updated)
}

// Move relocates the item at from so it ends up at to. Untouched items keep
// their relative order.
func (p *Page) Move(list Path, from, to int) error {
	items, err := p.List(list)
	if err != nil {
		return err
	}
	if from < 0 || from >= len(items) {
		return fmt.Errorf("%w: %q", ErrPathNotFound, list.Index(from).String())
	}
	if to < 0 || to >= len(items) {
		return fmt.Errorf("%w: %q", ErrPathNotFound, list.Index(to).String())
	}
	if from == to {
		return nil
	}
	item := items[from]
	updated := make([]any, 0, len(items))
	updated = append(updated, items[:from]...)
	updated = append(updated, items[from+1:]...)
	tail := append([]any{item}, updated[to:]...)
	updated = append(updated[:to], tail...)
	return p.Set(list, updated)
}
