package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/swingmatch/swingmatch/internal/fixtures"

	tea "github.com/charmbracelet/bubbletea"
)

type librarySection int

const (
	sectionSessions librarySection = iota
	sectionAnalyses
	sectionDrills
	sectionCount
)

var sectionNames = [...]string{"Sessions", "Analyses", "Drills"}

type libraryState struct {
	section librarySection
	// filter is 0 for all strokes, else 1 + the index into the record
	// strokes.
	filter int
	scroll int
}

// strokeFilter returns the selected stroke, or "" for all.
func (l libraryState) strokeFilter(fx *fixtures.Set) string {
	if l.filter <= 0 || l.filter > len(fx.Record.Strokes) {
		return ""
	}
	return fx.Record.Strokes[l.filter-1]
}

func (m Model) handleLibraryKey(key string) (tea.Model, tea.Cmd) {
	l := &m.library
	switch key {
	case KeyLeft, KeyH:
		l.section = (l.section + sectionCount - 1) % sectionCount
		l.scroll = 0
	case KeyRight, KeyL:
		l.section = (l.section + 1) % sectionCount
		l.scroll = 0
	case KeyUp, KeyK:
		if l.scroll > 0 {
			l.scroll--
		}
	case KeyDown, KeyJ:
		l.scroll++
	case KeyFilter:
		l.filter = (l.filter + 1) % (len(m.fx.Record.Strokes) + 1)
		l.scroll = 0
		return m, loadLibraryCmd(m.deps.Store, l.strokeFilter(m.fx), m.deps.OpTimeout)
	}
	return m, nil
}

func (m Model) renderLibrary() string {
	st := m.styles
	var b strings.Builder

	for s := sectionSessions; s < sectionCount; s++ {
		if s == m.library.section {
			b.WriteString(st.TabActive.Render(sectionNames[s]))
		} else {
			b.WriteString(st.Tab.Render(sectionNames[s]))
		}
	}
	filter := m.library.strokeFilter(m.fx)
	if filter == "" {
		filter = "all strokes"
	}
	b.WriteString(st.Dim.Render("   filter: " + filter))
	b.WriteString("\n\n")

	var lines []string
	switch m.library.section {
	case sectionSessions:
		lines = m.sessionLines()
	case sectionAnalyses:
		lines = m.analysisLines()
	case sectionDrills:
		lines = m.drillLines()
	}

	if len(lines) == 0 {
		b.WriteString(st.Dim.Render("Nothing here yet"))
		return b.String()
	}
	scroll := min(m.library.scroll, len(lines)-1)
	b.WriteString(strings.Join(lines[scroll:], "\n"))
	return b.String()
}

func (m Model) sessionLines() []string {
	st := m.styles
	filter := strings.ToLower(m.library.strokeFilter(m.fx))
	var lines []string

	if len(m.localSessions) > 0 {
		lines = append(lines, st.Subtitle.Render("Recorded here"))
		for _, s := range m.localSessions {
			lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
				st.CardTitle.Render(s.Stroke),
				st.Dim.Render(s.CreatedAt.Local().Format("Jan 2 15:04")),
				st.Dim.Render(formatDuration(s.DurationSeconds)),
				st.Badge.Render(s.Status)))
			if s.Notes != "" {
				lines = append(lines, "    "+st.Text.Render(s.Notes))
			}
			if len(s.Tags) > 0 {
				lines = append(lines, "    "+st.Dim.Render("#"+strings.Join(s.Tags, " #")))
			}
		}
		lines = append(lines, "")
	}

	lines = append(lines, st.Subtitle.Render("Sample sessions"))
	for _, s := range m.fx.Sessions {
		if filter != "" && !slices.Contains(s.Tags, filter) {
			continue
		}
		analyzed := st.Dim.Render("not analyzed")
		if s.Analyzed {
			analyzed = st.Success.Render("analyzed")
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s  %s",
			st.CardTitle.Render(s.Title),
			st.Dim.Render(s.Date.Format("Jan 2, 2006")),
			st.Dim.Render(formatDuration(s.DurationSeconds)),
			analyzed))
		if s.Notes != "" {
			lines = append(lines, "    "+st.Text.Render(s.Notes))
		}
		lines = append(lines, "    "+st.Dim.Render("#"+strings.Join(s.Tags, " #")))
	}
	return lines
}

func (m Model) analysisLines() []string {
	st := m.styles
	var lines []string
	for _, a := range m.fx.Analyses {
		title := a.StrokeType
		if p, ok := m.fx.Pro(a.ProID); ok {
			title += " vs " + p.Name
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			st.CardTitle.Render(title),
			st.Primary.Render(fmt.Sprintf("%d/100", a.Score)),
			st.Dim.Render(a.Date.Format("Jan 2, 2006"))))
		lines = append(lines, "    "+st.Dim.Render(fmt.Sprintf("power transfer %d%%  consistency %d%%", a.PowerTransfer, a.Consistency)))
	}
	return lines
}

func (m Model) drillLines() []string {
	st := m.styles
	filter := m.library.strokeFilter(m.fx)
	var lines []string
	for _, d := range m.fx.Drills {
		if filter != "" && !slices.Contains(d.Focus, filter) {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s  %s  %s",
			st.CardTitle.Render(d.Title),
			st.Badge.Render(d.Difficulty),
			st.Dim.Render(fmt.Sprintf("%d min", d.Minutes))))
		for _, w := range wrapText(d.Description, max(20, m.width-6)) {
			lines = append(lines, "    "+st.Text.Render(w))
		}
		lines = append(lines, "    "+st.Dim.Render(strings.Join(d.Focus, ", ")))
	}
	return lines
}
