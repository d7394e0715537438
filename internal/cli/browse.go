package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/manifest"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "browse <package>",
		Short: "Browse a package's parts and relationships interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cch := c.newCache(ctx, noCache)
			defer cch.Close()

			m, _, _, err := c.manifestFor(ctx, args[0], cch)
			if err != nil {
				return err
			}

			model := NewPartListModel(args[0], m)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the manifest cache")
	return cmd
}

// PartListModel is the bubbletea model for browsing a package's parts. The
// left pane lists parts; the detail pane shows the selected part's outgoing
// and incoming relationships.
type PartListModel struct {
	Path     string
	Manifest manifest.Manifest
	Cursor   int
	Height   int
	Offset   int
	Detail   bool
}

// NewPartListModel creates a browse model over a manifest.
func NewPartListModel(path string, m manifest.Manifest) PartListModel {
	return PartListModel{
		Path:     path,
		Manifest: m,
		Height:   15,
	}
}

func (m PartListModel) Init() tea.Cmd {
	return nil
}

func (m PartListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Manifest.Parts)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Manifest.Parts) > 0 {
				m.Detail = true
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PartListModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m PartListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Path))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ relationships  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Manifest.Parts) {
		end = len(m.Manifest.Parts)
	}

	for i := m.Offset; i < end; i++ {
		p := m.Manifest.Parts[i]
		line := fmt.Sprintf("%-48s %s", p.PartName, listDimStyle.Render(fmtBytes(p.Size)))
		if i == m.Cursor {
			b.WriteString("▸ " + listSelectedStyle.Render(line))
		} else {
			b.WriteString("  " + listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m PartListModel) detailView() string {
	p := m.Manifest.Parts[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(p.PartName))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(p.ContentType + "  ·  " + fmtBytes(p.Size)))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render("Outgoing"))
	b.WriteString("\n")
	found := false
	for _, r := range m.Manifest.Rels {
		if r.Source != p.PartName {
			continue
		}
		found = true
		b.WriteString(fmt.Sprintf("  %s %s %s\n", r.ID, listDimStyle.Render(iconArrow), r.Target))
	}
	if !found {
		b.WriteString(listDimStyle.Render("  none\n"))
	}

	b.WriteString("\n")
	b.WriteString(StyleHighlight.Render("Incoming"))
	b.WriteString("\n")
	found = false
	for _, r := range m.Manifest.Rels {
		if r.Target != p.PartName {
			continue
		}
		found = true
		b.WriteString(fmt.Sprintf("  %s %s %s\n", r.Source, listDimStyle.Render(iconArrow), r.ID))
	}
	if !found {
		b.WriteString(listDimStyle.Render("  none\n"))
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	return b.String()
}
