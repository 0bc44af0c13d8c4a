package fixtures

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Alex Johnson", s.User.Name)
	assert.Equal(t, []string{"Forehand", "Backhand", "Serve", "Volley"}, s.Record.Strokes)
	assert.NotEmpty(t, s.Record.Guide)
	assert.Len(t, s.Sessions, 3)
	assert.Len(t, s.Drills, 3)
	assert.Len(t, s.Onboarding.Steps, 3)
	assert.Len(t, s.Onboarding.SkillLevels, 4)
	assert.Equal(t, []string{"Week", "Month", "3 Months", "Year"}, s.Progress.TimeRanges)
	assert.Contains(t, s.Progress.TimeRanges, s.Progress.DefaultRange)

	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), s.Sessions[0].Date.UTC())
	assert.Equal(t, []string{"6'2\"", "Right-handed", "Athletic build"}, s.Pros[0].Traits)
}

func TestQuickActionsTargetKnownTabs(t *testing.T) {
	s := MustLoad()
	known := map[string]bool{"home": true, "library": true, "record": true, "ailab": true, "match": true, "progress": true, "more": true}
	for _, qa := range s.Home.QuickActions {
		assert.True(t, known[qa.Target], "quick action %q targets unknown tab %q", qa.ID, qa.Target)
	}
}

func TestAnalysisFor(t *testing.T) {
	s := MustLoad()

	a, ok := s.AnalysisFor("3")
	require.True(t, ok)
	assert.Equal(t, "Backhand Drive", a.StrokeType)
	assert.Len(t, a.Suggestions, 3)

	_, ok = s.AnalysisFor("2")
	assert.False(t, ok)

	p, ok := s.Pro(a.ProID)
	require.True(t, ok)
	assert.Equal(t, "Novak Djokovic", p.Name)
}

func TestParseRejectsBrokenInput(t *testing.T) {
	_, err := Parse([]byte("user: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("user:\n  name: x\n"))
	assert.Error(t, err, "a set without record strokes is unusable")
}
