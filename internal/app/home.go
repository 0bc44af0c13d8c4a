package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type homeState struct {
	cursor int
}

func (m Model) handleHomeKey(key string) (tea.Model, tea.Cmd) {
	actions := m.fx.Home.QuickActions
	switch key {
	case KeyUp, KeyK:
		if m.home.cursor > 0 {
			m.home.cursor--
		}
	case KeyDown, KeyJ:
		if m.home.cursor < len(actions)-1 {
			m.home.cursor++
		}
	case KeyEnter:
		if m.home.cursor >= len(actions) {
			return m, nil
		}
		if t, ok := ParseTab(actions[m.home.cursor].Target); ok {
			return m.switchTab(t)
		}
	}
	return m, nil
}

func (m Model) renderHome() string {
	fx := m.fx
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Header.Render(fmt.Sprintf("%s %s", fx.Home.Greeting, fx.User.Name)))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render(fmt.Sprintf("%s  %s, %s-handed", fx.Home.Tagline, m.skillLevel, strings.ToLower(m.handedness))))
	b.WriteString("\n\n")

	w := fx.Home.Weekly
	b.WriteString(st.Subtitle.Render("This week"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s sessions   %s minutes   %s improvement",
		st.Primary.Render(fmt.Sprint(w.Sessions)),
		st.Primary.Render(fmt.Sprint(w.Minutes)),
		st.Primary.Render(fmt.Sprintf("+%d%%", w.Improvement))))
	if m.sessionCount > 0 {
		b.WriteString(st.Dim.Render(fmt.Sprintf("   %d in your library", m.sessionCount)))
	}
	b.WriteString("\n\n")

	b.WriteString(st.Subtitle.Render("Quick actions"))
	b.WriteString("\n")
	for i, a := range fx.Home.QuickActions {
		cursor := "  "
		title := st.Text.Render(a.Title)
		if i == m.home.cursor {
			cursor = st.Selected.Render("> ")
			title = st.Selected.Render(a.Title)
		}
		b.WriteString(cursor + title + st.Dim.Render("  "+a.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Recent sessions"))
	b.WriteString("\n")
	for _, r := range fx.Home.Recent {
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s\n",
			padRight(st.Text.Render(r.Stroke), 10),
			st.Primary.Render(fmt.Sprintf("%.1f", r.Score)),
			st.Dim.Render(r.When),
			st.Badge.Render(fmt.Sprintf("+%d", r.Improvements))))
	}

	return b.String()
}
