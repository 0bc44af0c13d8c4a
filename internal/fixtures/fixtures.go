// Package fixtures holds the static content shown on the screens that have
// no backend: the demo user, sample sessions and analyses, pro players,
// drills, nearby players, progress and menus.
package fixtures

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var raw []byte

// Set is the full fixture set.
type Set struct {
	User          User           `yaml:"user"`
	Home          Home           `yaml:"home"`
	Sessions      []Session      `yaml:"sessions"`
	Analyses      []Analysis     `yaml:"analyses"`
	AIFeatures    []MenuItem     `yaml:"ai_features"`
	Pros          []Pro          `yaml:"pros"`
	Drills        []Drill        `yaml:"drills"`
	Players       []Player       `yaml:"players"`
	MatchRequests []MatchRequest `yaml:"match_requests"`
	Messages      []Message      `yaml:"messages"`
	Progress      Progress       `yaml:"progress"`
	Onboarding    Onboarding     `yaml:"onboarding"`
	More          []MenuSection  `yaml:"more"`
	Record        Record         `yaml:"record"`
}

type User struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	SkillLevel string `yaml:"skill_level"`
	Handedness string `yaml:"handedness"`
	Available  bool   `yaml:"available"`
}

type Home struct {
	Greeting     string         `yaml:"greeting"`
	Tagline      string         `yaml:"tagline"`
	Weekly       Weekly         `yaml:"weekly"`
	QuickActions []QuickAction  `yaml:"quick_actions"`
	Recent       []RecentStroke `yaml:"recent"`
}

type Weekly struct {
	Sessions    int `yaml:"sessions"`
	Minutes     int `yaml:"minutes"`
	Improvement int `yaml:"improvement"`
}

// QuickAction jumps to another tab. Target names the tab.
type QuickAction struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Target   string `yaml:"target"`
}

type RecentStroke struct {
	Stroke       string  `yaml:"stroke"`
	When         string  `yaml:"when"`
	Score        float64 `yaml:"score"`
	Improvements int     `yaml:"improvements"`
}

type Session struct {
	ID              string    `yaml:"id"`
	Title           string    `yaml:"title"`
	DurationSeconds int       `yaml:"duration_seconds"`
	Date            time.Time `yaml:"date"`
	Tags            []string  `yaml:"tags"`
	Notes           string    `yaml:"notes"`
	Analyzed        bool      `yaml:"analyzed"`
}

type Analysis struct {
	ID            string    `yaml:"id"`
	SessionID     string    `yaml:"session_id"`
	Kind          string    `yaml:"kind"`
	Status        string    `yaml:"status"`
	StrokeType    string    `yaml:"stroke_type"`
	Score         int       `yaml:"score"`
	PowerTransfer int       `yaml:"power_transfer"`
	Consistency   int       `yaml:"consistency"`
	ProID         string    `yaml:"pro_id"`
	Date          time.Time `yaml:"date"`
	Suggestions   []string  `yaml:"suggestions"`
}

type Pro struct {
	ID      string   `yaml:"id"`
	Name    string   `yaml:"name"`
	Style   string   `yaml:"style"`
	Strokes []string `yaml:"strokes"`
	Traits  []string `yaml:"traits"`
}

type Drill struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Difficulty  string   `yaml:"difficulty"`
	Focus       []string `yaml:"focus"`
	Minutes     int      `yaml:"minutes"`
	Equipment   []string `yaml:"equipment"`
}

type Player struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	Skill         string  `yaml:"skill"`
	DistanceMiles float64 `yaml:"distance_miles"`
	Rating        float64 `yaml:"rating"`
	Online        bool    `yaml:"online"`
	LastActive    string  `yaml:"last_active"`
	Style         string  `yaml:"style"`
}

type MatchRequest struct {
	ID       string    `yaml:"id"`
	From     string    `yaml:"from"`
	Message  string    `yaml:"message"`
	Status   string    `yaml:"status"`
	Proposed time.Time `yaml:"proposed"`
	Location string    `yaml:"location"`
}

type Message struct {
	ID      string    `yaml:"id"`
	From    string    `yaml:"from"`
	Content string    `yaml:"content"`
	At      time.Time `yaml:"at"`
	Read    bool      `yaml:"read"`
}

type Progress struct {
	TimeRanges   []string      `yaml:"time_ranges"`
	DefaultRange string        `yaml:"default_range"`
	Overall      Overall       `yaml:"overall"`
	Strokes      []StrokeScore `yaml:"strokes"`
	Achievements []Achievement `yaml:"achievements"`
}

type Overall struct {
	Current      float64 `yaml:"current"`
	Previous     float64 `yaml:"previous"`
	Sessions     int     `yaml:"sessions"`
	Improvements int     `yaml:"improvements"`
}

type StrokeScore struct {
	Name   string  `yaml:"name"`
	Score  float64 `yaml:"score"`
	Change float64 `yaml:"change"`
}

// Achievement is either unlocked (When is set) or in progress (Progress
// is a percentage).
type Achievement struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Unlocked    bool   `yaml:"unlocked"`
	When        string `yaml:"when"`
	Progress    int    `yaml:"progress"`
}

type Onboarding struct {
	Steps       []MenuItem `yaml:"steps"`
	SkillLevels []Choice   `yaml:"skill_levels"`
	Handedness  []string   `yaml:"handedness"`
}

type Choice struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type MenuSection struct {
	Title string     `yaml:"title"`
	Items []MenuItem `yaml:"items"`
}

// MenuItem is a titled row. Switch rows show Enabled as on/off.
type MenuItem struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Switch   bool   `yaml:"switch"`
	Enabled  bool   `yaml:"enabled"`
}

type Record struct {
	Strokes []string `yaml:"strokes"`
	Guide   []string `yaml:"guide"`
}

// Load decodes the embedded fixture set.
func Load() (*Set, error) {
	return Parse(raw)
}

// Parse decodes a fixture set from YAML.
func Parse(data []byte) (*Set, error) {
	var s Set
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	if len(s.Record.Strokes) == 0 {
		return nil, fmt.Errorf("decode fixtures: no record strokes")
	}
	return &s, nil
}

// MustLoad is Load for callers that cannot recover from a broken embed.
func MustLoad() *Set {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

// AnalysisFor returns the analysis of sessionID, if any.
func (s *Set) AnalysisFor(sessionID string) (Analysis, bool) {
	for _, a := range s.Analyses {
		if a.SessionID == sessionID {
			return a, true
		}
	}
	return Analysis{}, false
}

// Pro returns the pro with id, if any.
func (s *Set) Pro(id string) (Pro, bool) {
	for _, p := range s.Pros {
		if p.ID == id {
			return p, true
		}
	}
	return Pro{}, false
}
