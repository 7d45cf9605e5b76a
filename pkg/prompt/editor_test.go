package prompt

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pageblocks/pkg/blocks"
	"github.com/goliatone/go-pageblocks/pkg/content"
	"github.com/goliatone/go-pageblocks/pkg/session"
	"github.com/goliatone/go-pageblocks/pkg/store"
	"github.com/goliatone/go-pageblocks/pkg/testsupport"
)

// stubDriver answers selects by option label (exact, then prefix) and
// returns ErrAborted once a script runs out.
type stubDriver struct {
	selects  []string
	inputs   []string
	confirms []bool

	infos       []string
	inputConfig []InputConfig
	menus       [][]string
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.menus = append(s.menus, cfg.Options)
	if len(s.selects) == 0 {
		return -1, ErrAborted
	}
	want := s.selects[0]
	s.selects = s.selects[1:]
	for i, option := range cfg.Options {
		if option == want {
			return i, nil
		}
	}
	for i, option := range cfg.Options {
		if strings.HasPrefix(option, want) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("no option %q in %q", want, cfg.Options)
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfig = append(s.inputConfig, cfg)
	if len(s.inputs) == 0 {
		return "", ErrAborted
	}
	value := s.inputs[0]
	s.inputs = s.inputs[1:]
	return value, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return false, ErrAborted
	}
	value := s.confirms[0]
	s.confirms = s.confirms[1:]
	return value, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func newEditor(t *testing.T, doc string, driver *stubDriver) (*Editor, *session.Session, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore([]byte(doc))
	sess, err := session.Load(testsupport.Context(), st, blocks.DefaultPageSchema())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return NewEditor(sess, WithDriver(driver)), sess, st
}

func kinds(t *testing.T, page *content.Page, list string) []content.Kind {
	t.Helper()
	views, err := page.Blocks(content.MustPath(list))
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	out := make([]content.Kind, 0, len(views))
	for _, view := range views {
		out = append(out, view.Kind)
	}
	return out
}

const heroDoc = `{"headline":"H","subtext":"S","blocks":[{"_template":"hero","headline":"Old","subtext":"x","background_color":"#051e26","text_color":"white","align":"center"}]}`

func TestEditTextFieldAndSave(t *testing.T) {
	driver := &stubDriver{
		selects: []string{"blocks.0: Hero", "Headline = Old", MenuBack, MenuSave, MenuQuit},
		inputs:  []string{"New"},
	}
	editor, sess, st := newEditor(t, heroDoc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sess.Page().String(content.MustPath("blocks.0.headline")); got != "New" {
		t.Fatalf("headline = %q", got)
	}
	if !strings.Contains(string(st.Bytes()), `"headline": "New"`) {
		t.Fatalf("store not written:\n%s", st.Bytes())
	}
	if diff := cmp.Diff([]string{"[success] Saved!"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	if !driver.inputConfig[0].Multiline || driver.inputConfig[0].Default != "Old" {
		t.Fatalf("input config = %+v", driver.inputConfig[0])
	}
}

func TestPageMenuListsFieldsThenBlocks(t *testing.T) {
	driver := &stubDriver{selects: []string{MenuQuit}}
	editor, _, _ := newEditor(t, heroDoc, driver)
	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"Headline = H", "Subtext = S", "blocks.0: Hero", MenuAdd, MenuSave, MenuQuit}
	if diff := cmp.Diff(want, driver.menus[0]); diff != "" {
		t.Fatalf("menu mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumeratedFieldUsesSelect(t *testing.T) {
	driver := &stubDriver{
		selects:  []string{"blocks.0: Hero", "Text Color = white", "black", MenuBack, MenuQuit},
		confirms: []bool{true},
	}
	editor, sess, st := newEditor(t, heroDoc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"white", "black"}, driver.menus[2]); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if got := sess.Page().String(content.MustPath("blocks.0.text_color")); got != "black" {
		t.Fatalf("text_color = %q", got)
	}
	if st.Saves() != 0 {
		t.Fatalf("discarded edits were saved")
	}
}

func TestQuitWithUnsavedChangesCanBeDeclined(t *testing.T) {
	driver := &stubDriver{
		selects:  []string{"Headline = H", MenuQuit, MenuSave, MenuQuit},
		inputs:   []string{"Landing"},
		confirms: []bool{false},
	}
	editor, sess, st := newEditor(t, heroDoc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.Dirty() || st.Saves() != 1 {
		t.Fatalf("dirty=%v saves=%d", sess.Dirty(), st.Saves())
	}
}

func TestAbortStopsTheEditor(t *testing.T) {
	editor, _, _ := newEditor(t, heroDoc, &stubDriver{})
	if err := editor.Run(testsupport.Context()); err != ErrAborted {
		t.Fatalf("Run error = %v, want ErrAborted", err)
	}
}

func TestAddNestedFeature(t *testing.T) {
	doc := `{"blocks":[{"_template":"features","features":[{"_template":"feature","heading":"one","supporting_copy":"first"}]}]}`
	driver := &stubDriver{
		selects: []string{"blocks.0: Feature List", "Add to Features", "Feature", MenuBack, MenuSave, MenuQuit},
	}
	editor, sess, _ := newEditor(t, doc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]content.Kind{content.KindFeature, content.KindFeature}, kinds(t, sess.Page(), "blocks.0.features")); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
	if driver.infos[0] != "added blocks.0.features.1" {
		t.Fatalf("infos = %q", driver.infos)
	}
	if diff := cmp.Diff([]string{"Feature", MenuCancel}, driver.menus[2]); diff != "" {
		t.Fatalf("add menu mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveAndRemoveBlocks(t *testing.T) {
	doc := `{"blocks":[{"_template":"paragraph","text":"a"},{"_template":"hero","headline":"h"},{"_template":"paragraph","text":"b"}]}`
	driver := &stubDriver{
		selects:  []string{"blocks.0: Paragraph", MenuMoveDown, "blocks.2: Paragraph", MenuRemove, MenuQuit},
		confirms: []bool{true, true},
	}
	editor, sess, _ := newEditor(t, doc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]content.Kind{content.KindHero, content.KindParagraph}, kinds(t, sess.Page(), "blocks")); diff != "" {
		t.Fatalf("blocks mismatch (-want +got):\n%s", diff)
	}
	if got := sess.Page().String(content.MustPath("blocks.1.text")); got != "a" {
		t.Fatalf("remaining paragraph = %q", got)
	}
}

func TestImageFieldRecordsUpload(t *testing.T) {
	doc := `{"blocks":[{"_template":"images","left":{"src":"/a.jpg","alt":"ocean"},"right":{"src":"/b.jpg","alt":"dunes"}}]}`
	driver := &stubDriver{
		selects:  []string{"blocks.0: Image Diptych", "Left-Hand Image = /a.jpg", MenuBack, MenuQuit},
		inputs:   []string{"photos/new.jpg"},
		confirms: []bool{true},
	}
	editor, sess, _ := newEditor(t, doc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := sess.Page().String(content.MustPath("blocks.0.left.src")); got != "/photos/new.jpg" {
		t.Fatalf("left.src = %q", got)
	}
	if uploads := sess.Uploads(); len(uploads) != 1 || uploads[0].Stored != "/photos/new.jpg" {
		t.Fatalf("uploads = %+v", uploads)
	}
}

func TestUnknownBlockOnlyOffersStructuralEntries(t *testing.T) {
	doc := `{"blocks":[{"_template":"legacy"}]}`
	driver := &stubDriver{selects: []string{"blocks.0: legacy", MenuBack, MenuQuit}}
	editor, _, _ := newEditor(t, doc, driver)

	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{MenuRemove, MenuBack}, driver.menus[1]); diff != "" {
		t.Fatalf("block menu mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infos) != 1 || !strings.Contains(driver.infos[0], "cannot be edited") {
		t.Fatalf("infos = %q", driver.infos)
	}
}

func TestRejectedEditKeepsRunning(t *testing.T) {
	driver := &stubDriver{
		selects: []string{"blocks.0: Hero", "Headline = Old", MenuBack, MenuQuit},
		inputs:  []string{"Old"},
	}
	editor, sess, _ := newEditor(t, heroDoc, driver)
	if err := editor.Run(testsupport.Context()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.Dirty() {
		t.Fatalf("unchanged value dirtied the session")
	}
}
