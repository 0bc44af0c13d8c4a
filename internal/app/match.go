package app

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/swingmatch/swingmatch/internal/fixtures"

	tea "github.com/charmbracelet/bubbletea"
)

type matchState struct {
	available bool
	mapView   bool
}

func (m Model) handleMatchKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyAvailable:
		m.match.available = !m.match.available
	case KeyView:
		m.match.mapView = !m.match.mapView
	}
	return m, nil
}

func (m Model) renderMatch() string {
	st := m.styles
	var b strings.Builder

	status := st.Chip.Render("Not available")
	if m.match.available {
		status = st.ChipOn.Render("Available to play")
	}
	view := "list"
	if m.match.mapView {
		view = "map"
	}
	b.WriteString(st.Header.Render("Find a match") + "  " + status + st.Dim.Render("  view: "+view))
	b.WriteString("\n\n")

	b.WriteString(st.Subtitle.Render("Nearby players"))
	b.WriteString("\n")
	if m.match.mapView {
		b.WriteString(m.renderPlayerMap())
	} else {
		for _, p := range m.fx.Players {
			dot := st.IdleDot.Render("○")
			if p.Online {
				dot = st.Success.Render("●")
			}
			b.WriteString(fmt.Sprintf("  %s %s  %s  %s  %s\n",
				dot,
				st.CardTitle.Render(p.Name),
				st.Badge.Render(p.Skill),
				st.Primary.Render(fmt.Sprintf("★ %.1f", p.Rating)),
				st.Dim.Render(fmt.Sprintf("%.1f mi, %s, %s", p.DistanceMiles, p.Style, p.LastActive))))
		}
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Match requests"))
	b.WriteString("\n")
	for _, r := range m.fx.MatchRequests {
		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			st.CardTitle.Render(r.From),
			st.Badge.Render(r.Status),
			st.Dim.Render(r.Proposed.Format("Mon Jan 2")+" at "+r.Location)))
		b.WriteString("    " + st.Text.Render(r.Message) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Messages"))
	b.WriteString("\n")
	for _, msg := range m.fx.Messages {
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			st.Dim.Render(msg.At.Format("15:04")),
			st.CardTitle.Render(msg.From),
			st.Text.Render(msg.Content)))
	}

	return b.String()
}

// renderPlayerMap draws each player on a distance scale, nearest first.
func (m Model) renderPlayerMap() string {
	st := m.styles
	players := slices.Clone(m.fx.Players)
	slices.SortFunc(players, func(a, b fixtures.Player) int {
		return cmp.Compare(a.DistanceMiles, b.DistanceMiles)
	})

	const scale = 10 // columns per mile
	var b strings.Builder
	b.WriteString("  " + st.Primary.Render("◎ you") + "\n")
	for _, p := range players {
		n := max(1, int(p.DistanceMiles*scale))
		b.WriteString("  " + st.Divider.Render(strings.Repeat("·", n)) + " " + st.CardTitle.Render(p.Name))
		b.WriteString(st.Dim.Render(fmt.Sprintf(" %.1f mi", p.DistanceMiles)) + "\n")
	}
	return b.String()
}
