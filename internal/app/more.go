package app

import (
	"strings"

	"github.com/swingmatch/swingmatch/internal/fixtures"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

const themeRowID = "theme"

// moreRow is one selectable line of the More screen.
type moreRow struct {
	section string
	item    fixtures.MenuItem
}

type moreState struct {
	rows   []moreRow
	cursor int
}

// newMoreState flattens the menu sections and adds the dark mode switch to
// Settings.
func newMoreState(fx *fixtures.Set) moreState {
	var s moreState
	for _, sec := range fx.More {
		if sec.Title == "Settings" {
			s.rows = append(s.rows, moreRow{
				section: sec.Title,
				item:    fixtures.MenuItem{ID: themeRowID, Title: "Dark Mode", Subtitle: "Switch between light and dark", Switch: true},
			})
		}
		for _, it := range sec.Items {
			s.rows = append(s.rows, moreRow{section: sec.Title, item: it})
		}
	}
	return s
}

func (m Model) handleMoreKey(key string) (tea.Model, tea.Cmd) {
	s := &m.more
	switch key {
	case KeyUp, KeyK:
		if s.cursor > 0 {
			s.cursor--
		}
	case KeyDown, KeyJ:
		if s.cursor < len(s.rows)-1 {
			s.cursor++
		}
	case KeyEnter, KeySpace:
		if s.cursor >= len(s.rows) {
			return m, nil
		}
		row := &s.rows[s.cursor]
		switch {
		case row.item.ID == themeRowID:
			m.toggleTheme()
		case row.item.Switch:
			row.item.Enabled = !row.item.Enabled
		default:
			cmd := m.showToast(row.item.Title+" is available in the mobile app", false)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) renderMore() string {
	st := m.styles
	var b strings.Builder

	u := m.fx.User
	b.WriteString(st.Header.Render(u.Name) + st.Dim.Render("  "+u.Email+"  "+m.skillLevel))
	b.WriteString("\n")

	section := ""
	for i, row := range m.more.rows {
		if row.section != section {
			section = row.section
			b.WriteString("\n" + st.Subtitle.Render(section) + "\n")
		}

		title := st.Text.Render(row.item.Title)
		cursor := "  "
		if i == m.more.cursor {
			cursor = st.Selected.Render("> ")
			title = st.Selected.Render(row.item.Title)
		}

		line := cursor + title + st.Dim.Render("  "+row.item.Subtitle)
		if row.item.Switch {
			on := row.item.Enabled
			if row.item.ID == themeRowID {
				on = m.theme == ui.Dark
			}
			if on {
				line += "  " + st.ChipOn.Render("on")
			} else {
				line += "  " + st.Chip.Render("off")
			}
		}
		b.WriteString(line + "\n")
	}

	return b.String()
}
