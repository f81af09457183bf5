package render

import (
	"strings"
	"testing"

	"github.com/atomicstack/minimenu/internal/dom"
	"github.com/atomicstack/minimenu/internal/menu"
	"github.com/atomicstack/minimenu/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

func newTestSurface(t *testing.T, w, h int, opts ...Option) (*dom.Document, *Surface) {
	t.Helper()
	doc := dom.NewDocument(w, h)
	opts = append([]Option{WithStyles(theme.Plain())}, opts...)
	return doc, NewSurface(doc, opts...)
}

func buildContainer(t *testing.T, s *Surface, id string, items ...menu.Item) *Container {
	t.Helper()
	built, err := s.Build(id, items)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	c, ok := built.(*Container)
	if !ok {
		t.Fatalf("unexpected container type %T", built)
	}
	return c
}

func TestBuildCreatesHiddenContainer(t *testing.T) {
	doc, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "mm-anchor-1",
		menu.Item{Label: "Copy", Token: "copy", Icon: "c"},
		menu.Item{Label: "Delete", Token: "delete"},
		menu.Item{Label: "About"},
	)
	el, ok := doc.ElementByID("mm-anchor-1")
	if !ok || el != c.Element() {
		t.Fatalf("container not attached under its id")
	}
	if c.Visible() {
		t.Fatalf("freshly built container must be hidden")
	}
	if !el.HasClass("mm-anchor") || !el.HasClass("icons") {
		t.Fatalf("unexpected container classes %v", el.Classes())
	}
	nodes := c.Nodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	first := nodes[0].Element()
	if !first.HasClass("mm-item") || !first.HasClass("mm-copy") {
		t.Fatalf("unexpected item classes %v", first.Classes())
	}
	if tok, _ := first.Attr("token"); tok != "copy" {
		t.Fatalf("expected token attr copy, got %q", tok)
	}
	if _, ok := nodes[2].Element().Attr("token"); ok {
		t.Fatalf("untagged item must not carry a token attr")
	}
}

func TestBuildWithoutIcons(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m", menu.Item{Label: "One"})
	if c.Element().HasClass("icons") {
		t.Fatalf("icons class set without any icon")
	}
}

func TestBuildRejectsEmptyItems(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	if _, err := s.Build("m", nil); err == nil {
		t.Fatalf("expected error for empty item list")
	}
}

func TestLongLabelsAreTruncated(t *testing.T) {
	_, s := newTestSurface(t, 80, 24, WithMaxLabelWidth(8))
	c := buildContainer(t, s, "m", menu.Item{Label: "A rather long label"})
	label := c.nodes[0].Label()
	if lipgloss.Width(label) > 8 || !strings.HasSuffix(label, "…") {
		t.Fatalf("unexpected truncated label %q", label)
	}
}

func TestShowPositionsRowsAndHitTests(t *testing.T) {
	doc, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m",
		menu.Item{Label: "Copy", Token: "copy"},
		menu.Item{Label: "Delete", Token: "delete"},
	)
	c.Show(10, 5)
	if !c.Visible() {
		t.Fatalf("container should be visible after Show")
	}
	b := c.Element().Bounds()
	w, h := c.Size()
	if b.X != 10 || b.Y != 5 || b.W != w || b.H != h {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if h != 4 {
		t.Fatalf("expected height 4, got %d", h)
	}
	hit := doc.ElementAt(12, 7)
	node, ok := c.NodeFor(hit)
	if !ok || node.Token() != "delete" {
		t.Fatalf("expected delete row at (12,7), got %v", hit)
	}
	if border := doc.ElementAt(10, 5); border != c.Element() {
		t.Fatalf("expected border cell to hit the container")
	}
}

func TestShowClampsToDocument(t *testing.T) {
	_, s := newTestSurface(t, 20, 6)
	c := buildContainer(t, s, "m",
		menu.Item{Label: "Copy"},
		menu.Item{Label: "Paste"},
	)
	c.Show(18, 5)
	b := c.Element().Bounds()
	if b.X+b.W > 20 || b.Y+b.H > 6 {
		t.Fatalf("container leaks off screen: %+v", b)
	}
	c.Show(-4, -2)
	b = c.Element().Bounds()
	if b.X != 0 || b.Y != 0 {
		t.Fatalf("negative coordinates must clamp to 0, got %+v", b)
	}
}

func TestShowRaisesContainer(t *testing.T) {
	doc, s := newTestSurface(t, 40, 10)
	a := buildContainer(t, s, "a", menu.Item{Label: "First"})
	b := buildContainer(t, s, "b", menu.Item{Label: "Second"})
	b.Show(0, 0)
	a.Show(0, 0)
	hit := doc.ElementAt(2, 1)
	if _, ok := a.NodeFor(hit); !ok {
		t.Fatalf("most recently shown container should be on top")
	}
}

func TestMarkInvalidTogglesClassAndTitle(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m", menu.Item{Label: "Copy", Token: "copy"})
	n := c.nodes[0]
	n.MarkInvalid("read only")
	if !n.Invalid() || !n.Element().HasClass("mm-invalid") {
		t.Fatalf("node not marked invalid")
	}
	if title, _ := n.Element().Attr("title"); title != "read only" {
		t.Fatalf("unexpected title %q", title)
	}
	n.ClearInvalid()
	if n.Invalid() || n.Element().HasClass("mm-invalid") || n.Message() != "" {
		t.Fatalf("node still invalid after ClearInvalid")
	}
	if _, ok := n.Element().Attr("title"); ok {
		t.Fatalf("title attr should be removed")
	}
}

func TestMoveHighlightSkipsInvalid(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m",
		menu.Item{Label: "A", Token: "a"},
		menu.Item{Label: "B", Token: "b"},
		menu.Item{Label: "C", Token: "c"},
	)
	c.Show(0, 0)
	c.nodes[1].MarkInvalid("no")
	if !c.MoveHighlight(1) || c.Highlighted() != 0 {
		t.Fatalf("expected first row, got %d", c.Highlighted())
	}
	if !c.MoveHighlight(1) || c.Highlighted() != 2 {
		t.Fatalf("expected invalid row to be skipped, got %d", c.Highlighted())
	}
	if !c.MoveHighlight(1) || c.Highlighted() != 0 {
		t.Fatalf("expected wrap to first row, got %d", c.Highlighted())
	}
	if !c.MoveHighlight(-1) || c.Highlighted() != 2 {
		t.Fatalf("expected wrap backwards to last row, got %d", c.Highlighted())
	}
	c.nodes[0].MarkInvalid("no")
	c.nodes[2].MarkInvalid("no")
	if c.MoveHighlight(1) {
		t.Fatalf("no row is selectable")
	}
	c.Hide()
	if c.Highlighted() != -1 {
		t.Fatalf("Hide should clear the highlight")
	}
}

func TestRenderBoxDimensions(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m",
		menu.Item{Label: "Copy", Token: "copy", Hint: "c"},
		menu.Item{Label: "Delete", Token: "delete"},
	)
	c.Show(0, 0)
	out := c.Render()
	lines := strings.Split(out, "\n")
	w, h := c.Size()
	if len(lines) != h {
		t.Fatalf("expected %d lines, got %d:\n%s", h, len(lines), out)
	}
	for i, line := range lines {
		if got := lipgloss.Width(line); got != w {
			t.Fatalf("line %d width %d, want %d: %q", i, got, w, line)
		}
	}
	if !strings.Contains(lines[1], "Copy") || !strings.HasSuffix(strings.TrimRight(lines[1], "│ "), "c") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "Delete") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestShowWidensForInvalidReason(t *testing.T) {
	_, s := newTestSurface(t, 80, 24)
	c := buildContainer(t, s, "m",
		menu.Item{Label: "Open", Token: "open", Hint: "o"},
		menu.Item{Label: "Delete", Token: "delete"},
	)
	c.Show(0, 0)
	narrow, _ := c.Size()
	c.Hide()
	c.nodes[1].MarkInvalid("read only")
	c.Show(0, 0)
	wide, _ := c.Size()
	if wide != narrow+len("read only")-1 {
		t.Fatalf("expected width %d, got %d", narrow+len("read only")-1, wide)
	}
	lines := strings.Split(c.Render(), "\n")
	if !strings.Contains(lines[2], "Delete") || !strings.Contains(lines[2], "read only") {
		t.Fatalf("reason should be drawn in full: %q", lines[2])
	}
	c.Hide()
	c.nodes[1].ClearInvalid()
	c.Show(0, 0)
	if w, _ := c.Size(); w != narrow {
		t.Fatalf("width should shrink back to %d, got %d", narrow, w)
	}
}

func TestOverlaySplicesVisibleContainers(t *testing.T) {
	_, s := newTestSurface(t, 30, 8)
	c := buildContainer(t, s, "m", menu.Item{Label: "Copy"})
	base := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 8), "\n")
	if got := s.Overlay(base); got != base {
		t.Fatalf("hidden containers must not alter the screen")
	}
	c.Show(4, 2)
	out := strings.Split(s.Overlay(base), "\n")
	if len(out) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(out))
	}
	w, _ := c.Size()
	row := out[3]
	if lipgloss.Width(row) != 30 {
		t.Fatalf("row width changed: %q", row)
	}
	if !strings.HasPrefix(row, "....") || !strings.HasSuffix(row, strings.Repeat(".", 30-4-w)) {
		t.Fatalf("base content not preserved around the box: %q", row)
	}
	if !strings.Contains(row, "Copy") {
		t.Fatalf("menu row missing: %q", row)
	}
	if out[0] != base[:30] {
		t.Fatalf("rows above the box must be untouched")
	}
}

func TestRemoveForgetsContainer(t *testing.T) {
	doc, s := newTestSurface(t, 30, 8)
	c := buildContainer(t, s, "m", menu.Item{Label: "Copy"})
	c.Show(0, 0)
	c.Remove()
	if c.Visible() {
		t.Fatalf("removed container reports visible")
	}
	if _, ok := doc.ElementByID("m"); ok {
		t.Fatalf("removed container still indexed")
	}
	if len(s.Visible()) != 0 {
		t.Fatalf("surface still lists removed container")
	}
	if _, ok := s.ContainerFor(c.Element()); ok {
		t.Fatalf("ContainerFor should not resolve removed containers")
	}
}
