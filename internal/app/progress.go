package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/swingmatch/swingmatch/internal/fixtures"

	tea "github.com/charmbracelet/bubbletea"
)

type progressState struct {
	ranges []string
	idx    int
}

func newProgressState(fx *fixtures.Set) progressState {
	p := progressState{ranges: fx.Progress.TimeRanges}
	if i := slices.Index(p.ranges, fx.Progress.DefaultRange); i >= 0 {
		p.idx = i
	}
	return p
}

func (p progressState) current() string {
	if len(p.ranges) == 0 {
		return ""
	}
	return p.ranges[p.idx]
}

func (m Model) handleProgressKey(key string) (tea.Model, tea.Cmd) {
	n := len(m.progress.ranges)
	if n == 0 {
		return m, nil
	}
	switch key {
	case KeyLeft, KeyH:
		m.progress.idx = (m.progress.idx + n - 1) % n
	case KeyRight, KeyL:
		m.progress.idx = (m.progress.idx + 1) % n
	}
	return m, nil
}

func (m Model) renderProgress() string {
	st := m.styles
	p := m.fx.Progress
	var b strings.Builder

	b.WriteString(st.Header.Render("Progress") + "  ")
	for _, r := range m.progress.ranges {
		if r == m.progress.current() {
			b.WriteString(st.ChipOn.Render(r))
		} else {
			b.WriteString(st.Chip.Render(r))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	o := p.Overall
	b.WriteString(fmt.Sprintf("Overall %s %s   %d sessions   %d improvements\n\n",
		st.Primary.Render(fmt.Sprintf("%.1f", o.Current)),
		st.Success.Render(fmt.Sprintf("+%.1f", o.Current-o.Previous)),
		o.Sessions, o.Improvements))

	b.WriteString(st.Subtitle.Render("Strokes"))
	b.WriteString("\n")
	for _, s := range p.Strokes {
		bar := int(s.Score * 2)
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			padRight(st.Text.Render(s.Name), 10),
			st.Primary.Render(strings.Repeat("█", bar))+st.Divider.Render(strings.Repeat("░", max(0, 20-bar))),
			st.Text.Render(fmt.Sprintf("%.1f", s.Score)),
			st.Success.Render(fmt.Sprintf("+%.1f", s.Change))))
	}
	b.WriteString("\n")

	b.WriteString(st.Subtitle.Render("Achievements"))
	b.WriteString("\n")
	for _, a := range p.Achievements {
		if a.Unlocked {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", st.Success.Render("★"), st.CardTitle.Render(a.Title), st.Dim.Render(a.Description+", "+a.When)))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", st.IdleDot.Render("☆"), st.Text.Render(a.Title), st.Dim.Render(fmt.Sprintf("%s, %d%%", a.Description, a.Progress))))
		}
	}

	return b.String()
}
