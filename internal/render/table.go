// Package render draws ordered binding rows as a terminal table. It is
// purely presentational: ordering, grouping, and decoding all happen
// upstream, and the renderer never reorders what it is given.
package render

import (
	"fmt"
	"strings"

	"zbind/internal/config"
	"zbind/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Renderer formats rows according to the configured theme.
type Renderer struct {
	plain       bool
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	macroStyle  lipgloss.Style
	borderStyle lipgloss.Style
}

// New creates a Renderer from the display configuration.
func New(cfg *config.Config) *Renderer {
	theme := cfg.Display.Theme
	return &Renderer{
		plain:       cfg.Display.Plain,
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Header)),
		keyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Key)),
		macroStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Macro)),
		borderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border)),
	}
}

var columns = []string{"KEYMAP", "KEY", "KIND", "TARGET"}

// Render formats the rows. Rows carrying a group header start a new
// section titled with the header text.
func (r *Renderer) Render(rows []types.Row) string {
	if len(rows) == 0 {
		return ""
	}
	if r.plain {
		return r.renderPlain(rows)
	}
	return r.renderStyled(rows)
}

func (r *Renderer) renderStyled(rows []types.Row) string {
	var b strings.Builder
	for _, section := range split(rows) {
		if section.header != "" {
			b.WriteString(r.headerStyle.Render(section.header))
			b.WriteString("\n")
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(r.borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return r.headerStyle
				}
				if col == 1 {
					return r.keyStyle
				}
				if col == 3 && section.rows[row].Binding.Target.Kind == types.Macro {
					return r.macroStyle
				}
				return lipgloss.NewStyle()
			}).
			Headers(columns...)
		for _, row := range section.rows {
			t.Row(cells(row.Binding)...)
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) renderPlain(rows []types.Row) string {
	widths := make([]int, len(columns))
	for _, row := range rows {
		for i, cell := range cells(row.Binding) {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		if row.Header != "" {
			b.WriteString(row.Header)
			b.WriteString("\n")
		}
		line := make([]string, len(columns))
		for i, cell := range cells(row.Binding) {
			line[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString("  " + strings.TrimRight(strings.Join(line, "  "), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func cells(b types.Binding) []string {
	return []string{b.Keymap, b.Key, b.Target.Kind.String(), b.Target.Text}
}

type section struct {
	header string
	rows   []types.Row
}

// split partitions rows into sections at each header row. Ungrouped
// input yields a single headerless section.
func split(rows []types.Row) []section {
	var sections []section
	for _, row := range rows {
		if row.Header != "" || len(sections) == 0 {
			sections = append(sections, section{header: row.Header})
		}
		last := &sections[len(sections)-1]
		last.rows = append(last.rows, row)
	}
	return sections
}
