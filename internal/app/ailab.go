package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type ailabState struct {
	cursor int
}

func (m Model) handleAILabKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyUp, KeyK:
		if m.ailab.cursor > 0 {
			m.ailab.cursor--
		}
	case KeyDown, KeyJ:
		if m.ailab.cursor < len(m.fx.AIFeatures)-1 {
			m.ailab.cursor++
		}
	}
	return m, nil
}

func (m Model) renderAILab() string {
	st := m.styles
	var b strings.Builder

	b.WriteString(st.Header.Render("AI Lab"))
	b.WriteString("\n")
	for i, f := range m.fx.AIFeatures {
		if i == m.ailab.cursor {
			b.WriteString(st.Selected.Render("> " + f.Title))
		} else {
			b.WriteString("  " + st.Text.Render(f.Title))
		}
		b.WriteString(st.Dim.Render("  " + f.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render(fmt.Sprintf("Queued for analysis (%d)", len(m.pending))))
	b.WriteString("\n")
	if len(m.pending) == 0 {
		b.WriteString(st.Dim.Render("  Record a session and press ctrl+u to send it here"))
		b.WriteString("\n")
	}
	for _, p := range m.pending {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			st.CardTitle.Render(p.Stroke),
			st.Badge.Render(p.Status),
			st.Dim.Render(p.CreatedAt.Local().Format("Jan 2 15:04"))))
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Recent analyses"))
	b.WriteString("\n")
	for _, a := range m.fx.Analyses {
		b.WriteString(fmt.Sprintf("  %s  %s\n", st.CardTitle.Render(a.StrokeType), st.Primary.Render(fmt.Sprintf("%d/100", a.Score))))
		for _, s := range a.Suggestions {
			b.WriteString(st.Dim.Render("    • " + s))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Pro players"))
	b.WriteString("\n")
	for _, p := range m.fx.Pros {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			st.CardTitle.Render(p.Name),
			st.Text.Render(p.Style),
			st.Dim.Render(strings.Join(p.Traits, ", "))))
	}

	return b.String()
}
