package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"go.uber.org/zap"

	"github.com/swingmatch/swingmatch/internal/capture"
	"github.com/swingmatch/swingmatch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

type reviewFocus int

const (
	focusNotes reviewFocus = iota
	focusTagInput
	focusTagList
	focusCount
)

// reviewEditor holds the widgets of the review screen. The notes and tags
// themselves live in the session's capture.Review.
type reviewEditor struct {
	notes     textarea.Model
	tagInput  textinput.Model
	spinner   spinner.Model
	focus     reviewFocus
	tagCursor int
}

func newReviewEditor(styles ui.Styles) reviewEditor {
	notes := textarea.New()
	notes.Placeholder = "How did it feel? What to work on next..."
	notes.CharLimit = 0
	notes.ShowLineNumbers = false
	notes.SetHeight(4)

	tags := textinput.New()
	tags.Placeholder = "add a tag"
	tags.Prompt = "# "
	tags.CharLimit = 32

	e := reviewEditor{
		notes:    notes,
		tagInput: tags,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	e.applyStyles(styles)
	return e
}

func (e *reviewEditor) applyStyles(styles ui.Styles) {
	e.spinner.Style = styles.Spinner
	e.tagInput.PromptStyle = styles.Primary
	e.tagInput.TextStyle = styles.Text
	e.tagInput.PlaceholderStyle = styles.Dim
}

func (e *reviewEditor) setWidth(w int) {
	e.notes.SetWidth(max(20, w-4))
	e.tagInput.Width = max(10, w/3)
}

// reset clears the widgets for the next review.
func (e *reviewEditor) reset() {
	e.notes.Reset()
	e.tagInput.Reset()
	e.focus = focusNotes
	e.tagCursor = 0
	e.notes.Blur()
	e.tagInput.Blur()
}

func (e *reviewEditor) focusNotes() tea.Cmd {
	return e.setFocus(focusNotes)
}

func (e *reviewEditor) setFocus(f reviewFocus) tea.Cmd {
	e.focus = f
	e.notes.Blur()
	e.tagInput.Blur()
	switch f {
	case focusNotes:
		return e.notes.Focus()
	case focusTagInput:
		return e.tagInput.Focus()
	}
	return nil
}

// update forwards non-key messages (cursor blink) to the focused widget.
func (e *reviewEditor) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch e.focus {
	case focusNotes:
		e.notes, cmd = e.notes.Update(msg)
	case focusTagInput:
		e.tagInput, cmd = e.tagInput.Update(msg)
	}
	return cmd
}

func (m Model) handleReviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.record.session
	e := &m.record.editor
	review := s.Review()

	if s.Pending() {
		return m, nil
	}

	key := msg.String()
	switch key {
	case KeyEsc:
		m.logger.Debug("review discarded", zap.Uint64("attempt", s.Attempt()))
		cmd := m.cancelCapture()
		toast := m.showToast("Recording discarded", false)
		return m, tea.Batch(cmd, toast)

	case KeySave:
		return m.submit(capture.ActionSave)

	case KeyUpload:
		return m.submit(capture.ActionUpload)

	case KeyTab:
		cmd := e.setFocus((e.focus + 1) % focusCount)
		return m, cmd

	case KeyShiftTab:
		cmd := e.setFocus((e.focus + focusCount - 1) % focusCount)
		return m, cmd
	}

	switch e.focus {
	case focusNotes:
		var cmd tea.Cmd
		e.notes, cmd = e.notes.Update(msg)
		review.SetNotes(e.notes.Value())
		return m, cmd

	case focusTagInput:
		if key == KeyEnter {
			if review.AddTag(e.tagInput.Value()) {
				e.tagInput.Reset()
				e.tagCursor = review.Len() - 1
			}
			return m, nil
		}
		var cmd tea.Cmd
		e.tagInput, cmd = e.tagInput.Update(msg)
		return m, cmd

	case focusTagList:
		tags := review.Tags()
		switch key {
		case KeyLeft, KeyH:
			if e.tagCursor > 0 {
				e.tagCursor--
			}
		case KeyRight, KeyL:
			if e.tagCursor < len(tags)-1 {
				e.tagCursor++
			}
		case KeyRemove, KeyDelete, KeyBackspc:
			if e.tagCursor < len(tags) {
				review.RemoveTag(tags[e.tagCursor])
				e.tagCursor = min(e.tagCursor, max(0, review.Len()-1))
			}
		}
	}
	return m, nil
}

// submit hands the review to the library or to analysis and shows the
// spinner until the collaborator answers.
func (m Model) submit(action capture.Action) (tea.Model, tea.Cmd) {
	if m.record.awaitingMedia() {
		cmd := m.showToast("Still finishing the recording", true)
		return m, cmd
	}

	p, err := m.record.session.Submit(action)
	if err != nil {
		m.logger.Debug("submit", zap.Stringer("action", action), zap.Error(err))
		return m, nil
	}
	m.logger.Info("submit",
		zap.Stringer("action", action),
		zap.String("stroke", p.Stroke),
		zap.Int("duration", p.DurationSeconds),
		zap.Strings("tags", p.Tags))

	m.record.editor.notes.Blur()
	m.record.editor.tagInput.Blur()
	return m, tea.Batch(
		submitCmd(m.deps.Library, m.deps.Analyzer, action, p, m.deps.OpTimeout),
		m.record.editor.spinner.Tick,
	)
}

func (m Model) renderReview() string {
	s := m.record.session
	e := m.record.editor
	st := m.styles
	review := s.Review()

	var b strings.Builder
	b.WriteString(st.Header.Render("Review " + s.Options().Stroke))
	b.WriteString(st.Dim.Render(fmt.Sprintf("  %s recorded", formatDuration(s.DurationSeconds()))))
	b.WriteString("\n")
	if m.record.awaitingMedia() {
		b.WriteString(st.Dim.Render("Finishing recording..."))
	} else {
		b.WriteString(st.Dim.Render(string(s.Media())))
	}
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Notes", e.focus == focusNotes))
	b.WriteString("\n")
	b.WriteString(e.notes.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Tags", e.focus == focusTagInput || e.focus == focusTagList))
	b.WriteString("\n")
	b.WriteString(e.tagInput.View())
	b.WriteString("\n")

	tags := review.Tags()
	if len(tags) == 0 {
		b.WriteString(st.Dim.Render("no tags yet"))
	}
	for i, tag := range tags {
		if e.focus == focusTagList && i == e.tagCursor {
			b.WriteString(st.ChipOn.Render(tag + " ×"))
		} else {
			b.WriteString(st.Chip.Render(tag))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if s.Pending() {
		verb := "Saving"
		if s.PendingAction() == capture.ActionUpload {
			verb = "Uploading for analysis"
		}
		b.WriteString(e.spinner.View() + " " + st.Text.Render(verb+"..."))
	}

	return b.String()
}

func (m Model) fieldLabel(label string, focused bool) string {
	if focused {
		return m.styles.Selected.Render("▸ " + label)
	}
	return m.styles.Subtitle.Render("  " + label)
}
