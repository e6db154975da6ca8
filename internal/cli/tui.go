package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// IndividualSelection holds the result of the individual picker.
type IndividualSelection struct {
	Individual pedigree.Individual
}

// IndividualListModel is the bubbletea model for interactive selection of a
// pedigree subject from the loaded records.
type IndividualListModel struct {
	Individuals []pedigree.Individual
	Filter      string
	Cursor      int
	Selected    *IndividualSelection
	Height      int
	Offset      int
}

// NewIndividualListModel creates a new individual list model.
func NewIndividualListModel(individuals []pedigree.Individual) IndividualListModel {
	return IndividualListModel{
		Individuals: individuals,
		Cursor:      0,
		Height:      15,
		Offset:      0,
	}
}

// visible returns the individuals matching the current filter.
func (m IndividualListModel) visible() []pedigree.Individual {
	if m.Filter == "" {
		return m.Individuals
	}
	needle := strings.ToLower(m.Filter)
	matched := make([]pedigree.Individual, 0, len(m.Individuals))
	for _, in := range m.Individuals {
		if strings.Contains(strings.ToLower(in.ID), needle) ||
			strings.Contains(strings.ToLower(in.Name), needle) {
			matched = append(matched, in)
		}
	}
	return matched
}

func (m IndividualListModel) Init() tea.Cmd {
	return nil
}

func (m IndividualListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down":
			if m.Cursor < len(m.visible())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			visible := m.visible()
			if m.Cursor < len(visible) {
				m.Selected = &IndividualSelection{Individual: visible[m.Cursor]}
				return m, tea.Quit
			}
		case "backspace":
			if m.Filter != "" {
				m.Filter = m.Filter[:len(m.Filter)-1]
				m.Cursor, m.Offset = 0, 0
			}
		default:
			if len(msg.String()) == 1 {
				m.Filter += msg.String()
				m.Cursor, m.Offset = 0, 0
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

func (m IndividualListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Individual"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  type to filter  esc quit"))
	if m.Filter != "" {
		b.WriteString("   " + listSelectedStyle.Render("/"+m.Filter))
	}
	b.WriteString("\n\n")

	visible := m.visible()
	end := m.Offset + m.Height
	if end > len(visible) {
		end = len(visible)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		in := visible[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		sex := "—"
		if in.Sex != pedigree.SexUnknown {
			sex = in.Sex.String()
		}
		year := "—"
		if in.Year != "" {
			year = in.Year
		}

		rows = append(rows, []string{cursor, in.ID, in.DisplayName(), sex, year})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Sex", "Born").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			isCurrent := actualIdx == m.Cursor

			if col == 3 || col == 4 {
				if isCurrent {
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				}
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			if isCurrent {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(visible))))

	return b.String()
}
