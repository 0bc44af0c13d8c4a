package app

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
)

// onboardingState pages through the intro steps, then the skill level and
// handedness pickers.
type onboardingState struct {
	active bool
	page   int
	skill  int
	hand   int
}

// pages is the intro steps plus the two pickers.
func (m Model) onboardingPages() int {
	return len(m.fx.Onboarding.Steps) + 2
}

func (m Model) skillPage() int { return len(m.fx.Onboarding.Steps) }
func (m Model) handPage() int  { return len(m.fx.Onboarding.Steps) + 1 }

func (m Model) handleOnboardingKey(key string) (tea.Model, tea.Cmd) {
	o := &m.onboarding
	ob := m.fx.Onboarding

	switch key {
	case KeyEsc:
		o.active = false
		m.logger.Debug("onboarding skipped", zap.Int("page", o.page))
		return m, nil

	case KeyLeft, KeyH:
		if o.page > 0 {
			o.page--
		}

	case KeyUp, KeyK:
		switch o.page {
		case m.skillPage():
			o.skill = max(0, o.skill-1)
		case m.handPage():
			o.hand = max(0, o.hand-1)
		}

	case KeyDown, KeyJ:
		switch o.page {
		case m.skillPage():
			o.skill = min(len(ob.SkillLevels)-1, o.skill+1)
		case m.handPage():
			o.hand = min(len(ob.Handedness)-1, o.hand+1)
		}

	case KeyEnter, KeyRight, KeyL:
		if o.page < m.onboardingPages()-1 {
			o.page++
			return m, nil
		}
		o.active = false
		if o.skill < len(ob.SkillLevels) {
			m.skillLevel = ob.SkillLevels[o.skill].Title
		}
		if o.hand < len(ob.Handedness) {
			m.handedness = ob.Handedness[o.hand]
		}
		m.logger.Info("onboarding complete", zap.String("skill", m.skillLevel), zap.String("handedness", m.handedness))
	}
	return m, nil
}

func (m Model) renderOnboarding() string {
	st := m.styles
	ob := m.fx.Onboarding
	o := m.onboarding
	var b strings.Builder

	dots := make([]string, m.onboardingPages())
	for i := range dots {
		if i == o.page {
			dots[i] = st.Primary.Render("●")
		} else {
			dots[i] = st.IdleDot.Render("○")
		}
	}
	b.WriteString(strings.Join(dots, " "))
	b.WriteString("\n\n")

	switch {
	case o.page < len(ob.Steps):
		step := ob.Steps[o.page]
		b.WriteString(st.Header.Render(step.Title))
		b.WriteString("\n")
		b.WriteString(st.Dim.Render(step.Subtitle))

	case o.page == m.skillPage():
		b.WriteString(st.Header.Render("What's your skill level?"))
		b.WriteString("\n\n")
		for i, c := range ob.SkillLevels {
			b.WriteString(m.choiceLine(i == o.skill, c.Title, c.Description))
		}

	default:
		b.WriteString(st.Header.Render("Which hand do you play with?"))
		b.WriteString("\n\n")
		for i, h := range ob.Handedness {
			b.WriteString(m.choiceLine(i == o.hand, fmt.Sprintf("%s-handed", h), ""))
		}
	}

	return b.String()
}

func (m Model) choiceLine(selected bool, title, desc string) string {
	if selected {
		return m.styles.Selected.Render("> "+title) + m.styles.Dim.Render("  "+desc) + "\n"
	}
	return "  " + m.styles.Text.Render(title) + m.styles.Dim.Render("  "+desc) + "\n"
}
