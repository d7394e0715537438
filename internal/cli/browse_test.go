package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opckit/opckit/pkg/manifest"
)

func testManifestCLI() manifest.Manifest {
	return manifest.Manifest{
		Parts: []manifest.PartInfo{
			{PartName: "/ppt/media/image1.png", ContentType: "image/png", Size: 7},
			{PartName: "/ppt/presentation.xml", ContentType: "application/xml", Size: 15},
			{PartName: "/ppt/slides/slide1.xml", ContentType: "application/xml", Size: 8},
		},
		Rels: []manifest.RelInfo{
			{Source: "/", ID: "rId1", RelType: "officeDocument", Target: "/ppt/presentation.xml"},
			{Source: "/ppt/presentation.xml", ID: "rId1", RelType: "slide", Target: "/ppt/slides/slide1.xml"},
			{Source: "/ppt/slides/slide1.xml", ID: "rId1", RelType: "image", Target: "/ppt/media/image1.png"},
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowseNavigation(t *testing.T) {
	m := NewPartListModel("deck.pptx", testManifestCLI())

	next, _ := m.Update(keyMsg("j"))
	m = next.(PartListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("k"))
	m = next.(PartListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("k"))
	m = next.(PartListModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
}

func TestBrowseCursorBottomBound(t *testing.T) {
	m := NewPartListModel("deck.pptx", testManifestCLI())
	for range 10 {
		next, _ := m.Update(keyMsg("j"))
		m = next.(PartListModel)
	}
	if m.Cursor != len(m.Manifest.Parts)-1 {
		t.Errorf("cursor = %d, want last index %d", m.Cursor, len(m.Manifest.Parts)-1)
	}
}

func TestBrowseDetailToggle(t *testing.T) {
	m := NewPartListModel("deck.pptx", testManifestCLI())

	next, _ := m.Update(keyMsg("enter"))
	m = next.(PartListModel)
	if !m.Detail {
		t.Fatal("enter should open the detail pane")
	}

	view := m.View()
	if !strings.Contains(view, "/ppt/media/image1.png") {
		t.Error("detail view missing selected partname")
	}
	if !strings.Contains(view, "Incoming") {
		t.Error("detail view missing incoming section")
	}
	// image1.png is targeted by the slide.
	if !strings.Contains(view, "/ppt/slides/slide1.xml") {
		t.Error("detail view missing incoming source")
	}

	// esc returns to the list instead of quitting.
	next, cmd := m.Update(keyMsg("esc"))
	m = next.(PartListModel)
	if m.Detail {
		t.Error("esc should close the detail pane")
	}
	if cmd != nil {
		t.Error("esc from detail should not quit")
	}
}

func TestBrowseQuit(t *testing.T) {
	m := NewPartListModel("deck.pptx", testManifestCLI())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
}

func TestBrowseListView(t *testing.T) {
	m := NewPartListModel("deck.pptx", testManifestCLI())
	view := m.View()
	for _, want := range []string{"deck.pptx", "/ppt/presentation.xml", "/ppt/slides/slide1.xml"} {
		if !strings.Contains(view, want) {
			t.Errorf("list view missing %q", want)
		}
	}
}
