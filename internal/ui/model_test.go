package ui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/minimenu/internal/config"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/atomicstack/minimenu/internal/theme"
	"github.com/atomicstack/minimenu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

type recordedRun struct {
	argv []string
}

func newTestModel(t *testing.T, mf config.MenuFile, runs *[]recordedRun) *Model {
	t.Helper()
	bus := command.NewWithRunner(func(_ context.Context, argv []string) (string, int, error) {
		if runs != nil {
			*runs = append(*runs, recordedRun{argv: argv})
		}
		return "ok\n", 0, nil
	})
	m, err := NewModel(Config{
		Width:  80,
		Height: 24,
		Offset: 1,
		Menus:  mf,
		Bus:    bus,
		Styles: theme.Plain(),
	})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	return m
}

func newTestHarness(t *testing.T, runs *[]recordedRun) *Harness {
	t.Helper()
	return NewHarness(newTestModel(t, config.DefaultMenuFile(), runs))
}

func activeNode(t *testing.T, h *Harness, token string) menu.Node {
	t.Helper()
	active := h.Model().Registry().Active()
	if active == nil {
		t.Fatalf("no active menu")
	}
	nodes, err := active.Query(token)
	if err != nil || len(nodes) != 1 {
		t.Fatalf("query %q: %v (%d nodes)", token, err, len(nodes))
	}
	return nodes[0]
}

func TestNewModelBuildsSceneFromMenuFile(t *testing.T) {
	m := newTestModel(t, config.DefaultMenuFile(), nil)
	if got := m.Registry().Len(); got != 2 {
		t.Fatalf("expected 2 menus, got %d", got)
	}
	if len(m.scene.rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(m.scene.rows))
	}
	row, ok := m.Document().ElementByID("config")
	if !ok {
		t.Fatalf("row config missing")
	}
	if !row.HasClass("row") || !row.HasClass("file") || row.HasClass("writable") {
		t.Fatalf("unexpected row classes %v", row.Classes())
	}
	if b := row.Bounds(); b.X != 0 || b.Y != 3 || b.W != 39 {
		t.Fatalf("unexpected row bounds %+v", b)
	}
	if build, _ := m.Document().ElementByID("build"); build.Bounds().X != 40 {
		t.Fatalf("second panel should start at column 40, got %+v", build.Bounds())
	}
	if !m.focusedRow().el.HasClass("focused") {
		t.Fatalf("first row should be focused")
	}
}

func TestNewModelRejectsBadMenus(t *testing.T) {
	mf := config.MenuFile{Menus: []config.Menu{{Trigger: "contextmenu"}}}
	if _, err := NewModel(Config{Menus: mf}); !errors.Is(err, menu.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	mf = config.MenuFile{Menus: []config.Menu{{Panel: "nope", Trigger: "contextmenu", Items: []config.MenuItem{{Label: "x"}}}}}
	if _, err := NewModel(Config{Menus: mf}); err == nil {
		t.Fatalf("expected unknown panel error")
	}
	mf = config.MenuFile{Menus: []config.Menu{{Trigger: "contextmenu", Items: []config.MenuItem{{Label: "x", Token: "click"}}}}}
	if _, err := NewModel(Config{Menus: mf}); !errors.Is(err, menu.ErrConfiguration) {
		t.Fatalf("expected a reserved token to be rejected, got %v", err)
	}
}

func TestReservedTokenNeverRunsOnPlainClicks(t *testing.T) {
	var runs []recordedRun
	h := newTestHarness(t, &runs)
	bad := config.DefaultMenuFile()
	bad.Menus[0].Items[0].Token = "click"
	bad.Actions = append(bad.Actions, config.Action{Token: "click", Command: "echo {target}"})
	h.Model().Reload(bad)
	if h.Model().Registry().Len() != 2 {
		t.Fatalf("previous menus should be restored")
	}
	h.Click(5, 3)
	h.Click(45, 2)
	if len(runs) != 0 {
		t.Fatalf("ordinary clicks ran actions: %#v", runs)
	}
	if strings.Contains(h.Model().Status(), "click →") {
		t.Fatalf("ordinary click reported as a token: %q", h.Model().Status())
	}
}

func TestRightClickOpensMenuOnRow(t *testing.T) {
	h := newTestHarness(t, nil)
	if !h.RightClickElement("readme") {
		t.Fatalf("readme row missing")
	}
	active := h.Model().Registry().Active()
	if active == nil {
		t.Fatalf("expected an open menu")
	}
	if active.Target().ID() != "readme" {
		t.Fatalf("unexpected target %q", active.Target().ID())
	}
	if node := activeNode(t, h, "delete"); node.Invalid() {
		t.Fatalf("writable row should allow delete")
	}
	if h.Model().focusedRow().el.ID() != "readme" {
		t.Fatalf("right click should focus the row")
	}
}

func TestRequirementsDisableItems(t *testing.T) {
	h := newTestHarness(t, nil)
	h.RightClickElement("config")
	for _, token := range []string{"rename", "delete"} {
		node := activeNode(t, h, token)
		if !node.Invalid() || node.Message() != "read only" {
			t.Fatalf("%s should be disabled as read only, got invalid=%v message=%q", token, node.Invalid(), node.Message())
		}
	}
	if activeNode(t, h, "open").Invalid() {
		t.Fatalf("open has no requirement")
	}

	h.ClickNode("delete")
	if h.Model().Registry().Active() == nil {
		t.Fatalf("clicking a disabled item must keep the menu open")
	}
	if strings.Contains(h.Model().Status(), "delete") {
		t.Fatalf("disabled item raised its token: %q", h.Model().Status())
	}

	h.Press("esc")
	h.RightClickElement("readme")
	if activeNode(t, h, "delete").Invalid() {
		t.Fatalf("marks must not leak into the next opening")
	}
}

func TestSelectingItemRaisesTokenOnTarget(t *testing.T) {
	h := newTestHarness(t, nil)
	h.RightClickElement("notes")
	if !h.ClickNode("open") {
		t.Fatalf("open item missing")
	}
	if h.Model().Registry().Active() != nil {
		t.Fatalf("menu should close after a selection")
	}
	if got := h.Model().Status(); got != "open → notes" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestSelectingItemRunsAction(t *testing.T) {
	var runs []recordedRun
	h := newTestHarness(t, &runs)
	h.RightClickElement("build")
	h.ClickNode("logs")
	if len(runs) != 1 {
		t.Fatalf("expected one action run, got %d", len(runs))
	}
	want := []string{"echo", "logs", "for", "build"}
	if !reflect.DeepEqual(runs[0].argv, want) {
		t.Fatalf("unexpected argv %#v", runs[0].argv)
	}
	if got := h.Model().Status(); got != "logs → build done" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestActionFailureShowsError(t *testing.T) {
	bus := command.NewWithRunner(func(context.Context, []string) (string, int, error) {
		return "", 1, errors.New("exit status 1")
	})
	m, err := NewModel(Config{Width: 80, Height: 24, Menus: config.DefaultMenuFile(), Bus: bus, Styles: theme.Plain()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	h := NewHarness(m)
	h.RightClickElement("deploy")
	h.ClickNode("logs")
	if got := h.Model().Status(); !strings.Contains(got, "exit status 1") {
		t.Fatalf("expected error in status, got %q", got)
	}
}

func TestSwitchingMenusKeepsOneOpen(t *testing.T) {
	h := newTestHarness(t, nil)
	h.RightClickElement("readme")
	first := h.Model().Registry().Active()
	h.RightClickElement("build")
	second := h.Model().Registry().Active()
	if second == nil || second == first {
		t.Fatalf("expected the task menu to be active")
	}
	if got := len(h.Model().surface.Visible()); got != 1 {
		t.Fatalf("expected exactly one visible container, got %d", got)
	}
}

func TestDismissPaths(t *testing.T) {
	h := newTestHarness(t, nil)

	h.RightClickElement("readme")
	h.Press("esc")
	if h.Model().Registry().Active() != nil {
		t.Fatalf("esc should dismiss")
	}

	h.RightClickElement("readme")
	h.Click(70, 20)
	if h.Model().Registry().Active() != nil {
		t.Fatalf("click elsewhere should dismiss")
	}

	h.RightClickElement("readme")
	h.Send(tea.BlurMsg{})
	if h.Model().Registry().Active() != nil {
		t.Fatalf("blur should dismiss")
	}

	h.RightClickElement("readme")
	h.RightClick(70, 0)
	if h.Model().Registry().Active() != nil {
		t.Fatalf("right click outside any row should dismiss")
	}

	h.RightClickElement("readme")
	h.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if h.Model().Registry().Active() != nil {
		t.Fatalf("resize should dismiss")
	}
}

func TestKeyboardOpenHighlightAndSelect(t *testing.T) {
	var runs []recordedRun
	h := newTestHarness(t, &runs)
	for i := 0; i < 4; i++ {
		h.Press("down")
	}
	if id := h.Model().focusedRow().el.ID(); id != "deploy" {
		t.Fatalf("expected focus on deploy, got %q", id)
	}
	h.Press("m")
	active := h.Model().Registry().Active()
	if active == nil || active.Target().ID() != "deploy" {
		t.Fatalf("expected task menu on deploy")
	}
	if !activeNode(t, h, "run").Invalid() {
		t.Fatalf("run requires idle")
	}
	h.Press("down")
	c := h.Model().activeContainer()
	if c.Highlighted() != 1 {
		t.Fatalf("highlight should skip the disabled row, got %d", c.Highlighted())
	}
	h.Press("enter")
	if h.Model().Registry().Active() != nil {
		t.Fatalf("enter should select and close")
	}
	if len(runs) != 1 || runs[0].argv[3] != "deploy" {
		t.Fatalf("expected logs action for deploy, got %#v", runs)
	}
}

func TestTypeaheadJumpsToLabel(t *testing.T) {
	h := newTestHarness(t, nil)
	h.RightClickElement("readme")
	h.Press("d")
	c := h.Model().activeContainer()
	if c.Highlighted() != 2 {
		t.Fatalf("expected Delete highlighted, got %d", c.Highlighted())
	}
	h.Press("backspace")
	h.Press("r")
	h.Press("n")
	if c.Highlighted() != 1 {
		t.Fatalf("expected fuzzy match on Rename, got %d", c.Highlighted())
	}
	h.Press("enter")
	if got := h.Model().Status(); got != "rename → readme" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestTypeaheadResetsBetweenMenus(t *testing.T) {
	h := newTestHarness(t, nil)
	h.RightClickElement("readme")
	h.Press("x")
	h.Press("esc")
	h.RightClickElement("build")
	h.Press("s")
	if got := h.Model().activeContainer().Highlighted(); got != 1 {
		t.Fatalf("expected Show logs highlighted, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, config.DefaultMenuFile(), nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	h := NewHarness(m)
	h.RightClickElement("readme")
	h.Press("q")
	if h.Model().Registry().Active() == nil {
		t.Fatalf("q inside an open menu is type-ahead, not quit")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c should quit even with a menu open")
	}
}

func TestFixedSizeIgnoresResize(t *testing.T) {
	m := newTestModel(t, config.DefaultMenuFile(), nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if w, h := m.Document().Size(); w != 80 || h != 24 {
		t.Fatalf("fixed size changed to %dx%d", w, h)
	}

	tracking, err := NewModel(Config{Menus: config.DefaultMenuFile(), Styles: theme.Plain()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	tracking.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if w, h := tracking.Document().Size(); w != 120 || h != 40 {
		t.Fatalf("expected 120x40, got %dx%d", w, h)
	}
	if build, _ := tracking.Document().ElementByID("build"); build.Bounds().X != 60 {
		t.Fatalf("panels should be re-laid out, got %+v", build.Bounds())
	}
}

func TestInitialSizeSeedsLayoutWithoutFixingIt(t *testing.T) {
	m, err := NewModel(Config{InitialWidth: 120, InitialHeight: 40, Menus: config.DefaultMenuFile(), Styles: theme.Plain()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if w, h := m.Document().Size(); w != 120 || h != 40 {
		t.Fatalf("expected initial 120x40, got %dx%d", w, h)
	}
	if build, _ := m.Document().ElementByID("build"); build.Bounds().X != 60 {
		t.Fatalf("panels should use the initial width, got %+v", build.Bounds())
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, h := m.Document().Size(); w != 100 || h != 30 {
		t.Fatalf("initial size must not pin the document, got %dx%d", w, h)
	}

	fixed, err := NewModel(Config{Width: 80, InitialWidth: 120, Menus: config.DefaultMenuFile(), Styles: theme.Plain()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	if w, _ := fixed.Document().Size(); w != 80 {
		t.Fatalf("explicit width wins over the initial one, got %d", w)
	}
}
