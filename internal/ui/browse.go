// Package ui holds the interactive conversation browser.
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/chatextract/internal/util"
	"github.com/mithrel/chatextract/pkg/api"
)

const titleWidth = 48

// Browse opens a table of conversations and returns the index of the one
// picked with enter, or -1 when the user quits.
func Browse(ctx context.Context, convs []api.Conversation) (int, error) {
	p := tea.NewProgram(NewModel(convs), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return -1, err
	}
	return final.(Model).Chosen(), nil
}

// Model is the Bubble Tea model behind Browse.
type Model struct {
	table  table.Model
	chosen int
	empty  bool
}

func NewModel(convs []api.Conversation) Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Created", Width: 16},
		{Title: "Title", Width: titleWidth},
		{Title: "Messages", Width: 8},
	}

	rows := make([]table.Row, 0, len(convs))
	for i, c := range convs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			createdCell(c.CreateTime),
			util.Truncate(c.DisplayTitle(), titleWidth),
			fmt.Sprintf("%d", countMessages(c)),
		})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(15, max(3, len(rows)+3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{table: t, chosen: -1, empty: len(rows) == 0}
}

// Chosen is the selected index, -1 if nothing was picked.
func (m Model) Chosen() int { return m.chosen }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.chosen = -1
			return m, tea.Quit
		case "enter":
			if !m.empty {
				m.chosen = m.table.Cursor()
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.empty {
		return "(no conversations)\n"
	}
	return m.table.View() + "\n↑/↓ to navigate • enter to open • q to quit\n"
}

func createdCell(u api.Unix) string {
	if u.IsZero() {
		return "Unknown"
	}
	return u.Time().Format("2006-01-02 15:04")
}

func countMessages(c api.Conversation) int {
	n := 0
	for _, id := range c.Mapping.IDs() {
		if node, ok := c.Mapping.Get(id); ok && node.Message != nil {
			n++
		}
	}
	return n
}
