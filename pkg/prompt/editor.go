package prompt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-pageblocks/internal/logging"
	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/fields"
	"github.com/goliatone/go-pageblocks/pkg/session"
)

// Menu entries shared by every level.
const (
	MenuAdd      = "Add block"
	MenuSave     = "Save"
	MenuQuit     = "Quit"
	MenuBack     = "Back"
	MenuRemove   = "Remove"
	MenuMoveUp   = "Move up"
	MenuMoveDown = "Move down"
	MenuCancel   = "Cancel"
)

const summaryWidth = 40

type Option func(*Editor)

// WithDriver replaces the survey driver.
func WithDriver(driver Driver) Option {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor walks a session through menus of page fields and blocks.
type Editor struct {
	session *session.Session
	driver  Driver
	logger  *slog.Logger
}

// NewEditor builds an editor for sess.
func NewEditor(sess *session.Session, options ...Option) *Editor {
	e := &Editor{session: sess, logger: logging.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		e.driver = NewSurveyDriver(nil)
	}
	return e
}

type entry struct {
	label  string
	action func(ctx context.Context) (done bool, err error)
}

func (e *Editor) choose(ctx context.Context, message string, entries []entry) (bool, error) {
	labels := make([]string, len(entries))
	for i, item := range entries {
		labels[i] = item.label
	}
	idx, err := e.driver.Select(ctx, SelectConfig{Message: message, Options: labels, PageSize: 15})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(entries) {
		return false, fmt.Errorf("prompt: no menu entry %d", idx)
	}
	return entries[idx].action(ctx)
}

// Run shows the page menu until the user quits. Aborting a prompt returns
// ErrAborted.
func (e *Editor) Run(ctx context.Context) error {
	if e.session == nil {
		return fmt.Errorf("prompt: session is nil")
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := e.choose(ctx, "Edit "+e.session.Location(), e.pageMenu())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (e *Editor) pageMenu() []entry {
	schema := e.session.Schema()
	page := e.session.Page()

	var entries []entry
	for _, field := range schema.Fields {
		path, err := field.Path()
		if err != nil {
			continue
		}
		entries = append(entries, e.fieldEntry(field, path))
	}
	entries = append(entries, e.blockEntries(content.BlocksPath, page)...)
	entries = append(entries,
		entry{label: MenuAdd, action: func(ctx context.Context) (bool, error) {
			return false, e.addBlock(ctx, content.BlocksPath)
		}},
		entry{label: MenuSave, action: func(ctx context.Context) (bool, error) {
			return false, e.submit(ctx)
		}},
		entry{label: MenuQuit, action: e.quit},
	)
	return entries
}

func (e *Editor) blockEntries(list content.Path, page *content.Page) []entry {
	views, err := page.Blocks(list)
	if err != nil {
		return nil
	}
	entries := make([]entry, 0, len(views))
	for _, view := range views {
		path := view.Path()
		label := string(view.Kind)
		if tmpl, err := e.session.Schema().TemplateAt(page, path); err == nil {
			label = tmpl.Label
		}
		entries = append(entries, entry{
			label: fmt.Sprintf("%s: %s", path.String(), label),
			action: func(ctx context.Context) (bool, error) {
				return false, e.blockMenu(ctx, path)
			},
		})
	}
	return entries
}

func (e *Editor) fieldEntry(field fields.Field, path content.Path) entry {
	value := summarize(e.session.Page().String(path))
	return entry{
		label: fmt.Sprintf("%s = %s", field.Label, value),
		action: func(ctx context.Context) (bool, error) {
			return false, e.editField(ctx, field, path)
		},
	}
}

// blockMenu edits one block until the user goes back or removes it.
func (e *Editor) blockMenu(ctx context.Context, path content.Path) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := e.session.Page()
		list, index := path.Parent(), blockIndex(path)
		siblings, err := page.List(list)
		if err != nil {
			return nil
		}

		var entries []entry
		tmpl, err := e.session.Schema().TemplateAt(page, path)
		if err != nil {
			if infoErr := e.driver.Info(ctx, fmt.Sprintf("%s cannot be edited: %v", path.String(), err)); infoErr != nil {
				return infoErr
			}
		} else {
			for _, field := range tmpl.Fields {
				if field.Widget == fields.WidgetBlocks {
					nested := path.JoinDotted(field.Name)
					entries = append(entries, e.blockEntries(nested, page)...)
					scope, _ := tmpl.List(field.Name)
					entries = append(entries, entry{
						label: "Add to " + field.Label,
						action: func(ctx context.Context) (bool, error) {
							return false, e.addBlockFrom(ctx, nested, scope)
						},
					})
					continue
				}
				rel, err := field.Path()
				if err != nil {
					continue
				}
				entries = append(entries, e.fieldEntry(field, path.Concat(rel)))
			}
		}

		if index > 0 {
			entries = append(entries, entry{label: MenuMoveUp, action: func(context.Context) (bool, error) {
				return true, e.move(list, index, index-1)
			}})
		}
		if index < len(siblings)-1 {
			entries = append(entries, entry{label: MenuMoveDown, action: func(context.Context) (bool, error) {
				return true, e.move(list, index, index+1)
			}})
		}
		entries = append(entries,
			entry{label: MenuRemove, action: func(ctx context.Context) (bool, error) {
				return true, e.remove(ctx, list, index)
			}},
			entry{label: MenuBack, action: func(context.Context) (bool, error) { return true, nil }},
		)

		done, err := e.choose(ctx, path.String(), entries)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (e *Editor) editField(ctx context.Context, field fields.Field, path content.Path) error {
	current := e.session.Page().String(path)

	switch {
	case field.Enumerated():
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      field.Options,
			DefaultIndex: indexOfOption(field.Options, current),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			return nil
		}
		return e.set(ctx, path, field.Options[idx])
	case field.Widget == fields.WidgetImage:
		name, err := e.driver.Input(ctx, InputConfig{
			Message: field.Label,
			Default: current,
			Help:    "file name below " + field.Dir(),
		})
		if err != nil {
			return err
		}
		if name == current || strings.TrimSpace(name) == "" {
			return nil
		}
		stored, err := e.session.Upload(path, name)
		if err != nil {
			return e.reject(ctx, path, err)
		}
		return e.driver.Info(ctx, fmt.Sprintf("%s = %s", path.String(), stored))
	default:
		value, err := e.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   current,
			Multiline: field.Widget == fields.WidgetTextarea,
		})
		if err != nil {
			return err
		}
		return e.set(ctx, path, value)
	}
}

func (e *Editor) set(ctx context.Context, path content.Path, value string) error {
	if err := e.session.Set(path, value); err != nil {
		return e.reject(ctx, path, err)
	}
	return nil
}

// reject reports a refused edit and keeps the editor running.
func (e *Editor) reject(ctx context.Context, path content.Path, err error) error {
	e.logger.Warn("edit rejected", "path", path.String(), "error", err)
	return e.driver.Info(ctx, fmt.Sprintf("%s not changed: %v", path.String(), err))
}

func (e *Editor) addBlock(ctx context.Context, list content.Path) error {
	scope, err := e.session.Schema().ListScope(e.session.Page(), list)
	if err != nil {
		return e.reject(ctx, list, err)
	}
	return e.addBlockFrom(ctx, list, scope)
}

func (e *Editor) addBlockFrom(ctx context.Context, list content.Path, scope *blocks.Registry) error {
	if scope == nil {
		return nil
	}
	templates := scope.Templates()
	options := make([]string, 0, len(templates)+1)
	for _, tmpl := range templates {
		options = append(options, tmpl.Label)
	}
	options = append(options, MenuCancel)

	idx, err := e.driver.Select(ctx, SelectConfig{Message: "Add to " + list.String(), Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(templates) {
		return nil
	}
	path, err := e.session.AddBlock(list, -1, templates[idx].Kind)
	if err != nil {
		return e.reject(ctx, list, err)
	}
	return e.driver.Info(ctx, "added "+path.String())
}

func (e *Editor) move(list content.Path, from, to int) error {
	if err := e.session.MoveBlock(list, from, to); err != nil {
		e.logger.Warn("move rejected", "list", list.String(), "error", err)
	}
	return nil
}

func (e *Editor) remove(ctx context.Context, list content.Path, index int) error {
	ok, err := e.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Remove %s?", list.Index(index).String())})
	if err != nil || !ok {
		return err
	}
	if err := e.session.RemoveBlock(list, index); err != nil {
		return e.reject(ctx, list.Index(index), err)
	}
	return nil
}

func (e *Editor) submit(ctx context.Context) error {
	err := e.session.Submit(ctx)
	for _, alert := range e.session.Alerts() {
		if infoErr := e.driver.Info(ctx, fmt.Sprintf("[%s] %s", alert.Level, alert.Message)); infoErr != nil {
			return infoErr
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (e *Editor) quit(ctx context.Context) (bool, error) {
	if !e.session.Dirty() {
		return true, nil
	}
	return e.driver.Confirm(ctx, ConfirmConfig{Message: "Discard unsaved changes?"})
}

func blockIndex(path content.Path) int {
	idx, err := strconv.Atoi(path.Last())
	if err != nil {
		return -1
	}
	return idx
}

func indexOfOption(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return 0
}

func summarize(value string) string {
	value = strings.Join(strings.Fields(value), " ")
	if utf8.RuneCountInString(value) <= summaryWidth {
		return value
	}
	runes := []rune(value)
	return string(runes[:summaryWidth-3]) + "..."
}
