package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
	"github.com/goliatone/go-pageblocks/pkg/store"
)

var (
	// ErrUnsavedChanges is returned by Reload while the working copy is dirty.
	ErrUnsavedChanges = errors.New("session: unsaved changes")
	// ErrNotImage reports an upload against a field that is not an image.
	ErrNotImage = errors.New("session: field is not an image")
)

// Upload records an asset selected for an image field.
type Upload struct {
	Path     content.Path
	Filename string
	Dir      string
	Stored   string
}

// Session is one editing session over a content store.
type Session struct {
	id            string
	store         store.Store
	schema        blocks.PageSchema
	logger        *slog.Logger
	createMissing bool

	original []byte
	page     *content.Page
	dirty    bool
	alerts   []Alert
	uploads  []Upload
}

// Load reads the document from st and opens a session over a working copy.
func Load(ctx context.Context, st store.Store, schema blocks.PageSchema, options ...Option) (*Session, error) {
	if st == nil {
		return nil, fmt.Errorf("session: store is nil")
	}
	s := &Session{
		id:     uuid.NewString(),
		store:  st,
		schema: schema,
		logger: logging.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if err := s.read(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("session opened", "session", s.id, "store", st.Location())
	return s, nil
}

func (s *Session) read(ctx context.Context) error {
	data, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound) && s.createMissing:
		s.original = nil
		s.page = content.NewPage()
		s.dirty = false
		return nil
	case err != nil:
		return fmt.Errorf("session: load %s: %w", s.store.Location(), err)
	}

	canonical, err := content.Decode(data)
	if err != nil {
		return fmt.Errorf("session: load %s: %w", s.store.Location(), err)
	}
	s.original = data
	s.page = canonical.Clone()
	s.dirty = false
	return nil
}

// ID identifies the session in logs.
func (s *Session) ID() string {
	return s.id
}

// Schema returns the page schema the session binds edits through.
func (s *Session) Schema() blocks.PageSchema {
	return s.schema
}

// Location names the underlying store.
func (s *Session) Location() string {
	return s.store.Location()
}

// Page returns the working copy.
func (s *Session) Page() *content.Page {
	return s.page
}

// Values returns the working copy tree.
func (s *Session) Values() map[string]any {
	return s.page.Values()
}

// Dirty reports whether the working copy has unsubmitted edits.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Get reads the working copy at path.
func (s *Session) Get(path content.Path) (any, error) {
	return s.page.Get(path)
}

// Bind resolves path to its declared field.
func (s *Session) Bind(path content.Path) (blocks.Binding, error) {
	return s.schema.Bind(s.page, path)
}

// Set validates value against the field bound at path and writes it to that
// leaf only. Values outside a color or select field's options are rejected
// and never stored.
func (s *Session) Set(path content.Path, value any) error {
	binding, err := s.Bind(path)
	if err != nil {
		return err
	}
	if binding.Field.Widget == fields.WidgetBlocks {
		return fmt.Errorf("session: %q is a block list", path.String())
	}
	coerced, err := binding.Field.Coerce(value)
	if err != nil {
		s.logger.Warn("edit rejected", "session", s.id, "path", path.String(), "error", err)
		return err
	}
	if current, err := s.page.Get(path); err == nil && current == coerced {
		return nil
	}
	if err := s.page.Set(path, coerced); err != nil {
		return err
	}
	s.dirty = true
	s.logger.Debug("field set", "session", s.id, "path", path.String())
	return nil
}

// AddBlock inserts a new block of kind into the list at index. Out-of-range
// indexes append. The kind must be registered for that list. It returns the
// path of the new block.
func (s *Session) AddBlock(list content.Path, index int, kind content.Kind) (content.Path, error) {
	reg, err := s.schema.ListScope(s.page, list)
	if err != nil {
		return nil, err
	}
	tmpl, err := reg.Get(kind)
	if err != nil {
		return nil, err
	}
	items, err := s.page.List(list)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(items) {
		index = len(items)
	}
	if err := s.page.Insert(list, index, tmpl.NewItem()); err != nil {
		return nil, err
	}
	s.dirty = true
	s.logger.Debug("block added", "session", s.id, "list", list.String(), "index", index, "kind", kind)
	return list.Index(index), nil
}

// RemoveBlock deletes the block at index from the list.
func (s *Session) RemoveBlock(list content.Path, index int) error {
	if _, err := s.schema.ListScope(s.page, list); err != nil {
		return err
	}
	if _, err := s.page.Remove(list, index); err != nil {
		return err
	}
	s.dirty = true
	s.logger.Debug("block removed", "session", s.id, "list", list.String(), "index", index)
	return nil
}

// MoveBlock moves the block at from to position to inside the same list.
// Every other block keeps its relative order.
func (s *Session) MoveBlock(list content.Path, from, to int) error {
	if _, err := s.schema.ListScope(s.page, list); err != nil {
		return err
	}
	if err := s.page.Move(list, from, to); err != nil {
		return err
	}
	if from != to {
		s.dirty = true
	}
	s.logger.Debug("block moved", "session", s.id, "list", list.String(), "from", from, "to", to)
	return nil
}

func (s *Session) imageField(path content.Path) (blocks.Binding, error) {
	binding, err := s.Bind(path)
	if err != nil {
		return blocks.Binding{}, err
	}
	if binding.Field.Widget != fields.WidgetImage {
		return blocks.Binding{}, fmt.Errorf("%w: %q", ErrNotImage, path.String())
	}
	return binding, nil
}

// UploadDir returns where an upload for the image field at path belongs.
func (s *Session) UploadDir(path content.Path) (string, error) {
	binding, err := s.imageField(path)
	if err != nil {
		return "", err
	}
	return binding.Field.Dir(), nil
}

// Upload stores the parsed form of filename in the image field at path and
// records the upload. It returns the stored value.
func (s *Session) Upload(path content.Path, filename string) (string, error) {
	binding, err := s.imageField(path)
	if err != nil {
		return "", err
	}
	stored := binding.Field.StoredPath(filename)
	if err := s.page.Set(path, stored); err != nil {
		return "", err
	}
	s.dirty = true
	s.uploads = append(s.uploads, Upload{
		Path:     path.Join(),
		Filename: filename,
		Dir:      binding.Field.Dir(),
		Stored:   stored,
	})
	s.logger.Debug("asset selected", "session", s.id, "path", path.String(), "stored", stored)
	return stored, nil
}

// Uploads lists the uploads recorded in this session.
func (s *Session) Uploads() []Upload {
	return append([]Upload(nil), s.uploads...)
}

// Preview resolves what the image field at path currently displays.
func (s *Session) Preview(path content.Path) (string, error) {
	binding, err := s.imageField(path)
	if err != nil {
		return "", err
	}
	return binding.Field.Preview(s.page, binding.Position), nil
}

// Submit overwrites the store with the whole working copy. An untouched
// session writes the bytes it loaded. On failure the working copy and the
// dirty flag are kept and an error alert is queued.
func (s *Session) Submit(ctx context.Context) error {
	data, err := s.payload()
	if err != nil {
		s.fail(err)
		return err
	}
	if err := s.store.Save(ctx, data); err != nil {
		err = fmt.Errorf("session: save %s: %w", s.store.Location(), err)
		s.fail(err)
		return err
	}
	s.original = data
	s.dirty = false
	s.alerts = append(s.alerts, Alert{Level: AlertSuccess, Message: SavedMessage})
	s.logger.Info("content saved", "session", s.id, "store", s.store.Location(), "bytes", len(data))
	return nil
}

func (s *Session) payload() ([]byte, error) {
	if !s.dirty && s.original != nil {
		return s.original, nil
	}
	data, err := s.page.Encode()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	return data, nil
}

func (s *Session) fail(err error) {
	s.alerts = append(s.alerts, Alert{Level: AlertError, Message: err.Error()})
	s.logger.Error("submit failed", "session", s.id, "store", s.store.Location(), "error", err)
}

// Reload replaces the working copy with the stored document. It refuses while
// there are unsaved edits.
func (s *Session) Reload(ctx context.Context) error {
	if s.dirty {
		return ErrUnsavedChanges
	}
	if err := s.read(ctx); err != nil {
		return err
	}
	s.alerts = append(s.alerts, Alert{Level: AlertInfo, Message: "Content reloaded"})
	s.logger.Info("content reloaded", "session", s.id, "store", s.store.Location())
	return nil
}

// Changed reports whether the stored document differs from the bytes this
// session loaded or last wrote.
func (s *Session) Changed(ctx context.Context) (bool, error) {
	data, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return s.original != nil, nil
	}
	if err != nil {
		return false, fmt.Errorf("session: load %s: %w", s.store.Location(), err)
	}
	return !bytes.Equal(data, s.original), nil
}

// Alerts drains the queued notifications.
func (s *Session) Alerts() []Alert {
	out := s.alerts
	s.alerts = nil
	return out
}
