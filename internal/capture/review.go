package capture

import (
	"slices"
	"strings"
)

// Review holds the notes and tags typed in for a finished capture. It only
// lives while the session is in review.
type Review struct {
	notes string
	tags  []string
}

// AddTag trims candidate and appends it unless it is empty or already
// present (case-sensitive). Reports whether the tag was added.
func (r *Review) AddTag(candidate string) bool {
	tag := strings.TrimSpace(candidate)
	if tag == "" || slices.Contains(r.tags, tag) {
		return false
	}
	r.tags = append(r.tags, tag)
	return true
}

// RemoveTag drops the first exact match. Reports whether anything changed.
func (r *Review) RemoveTag(tag string) bool {
	i := slices.Index(r.tags, tag)
	if i < 0 {
		return false
	}
	r.tags = slices.Delete(r.tags, i, i+1)
	return true
}

// SetNotes replaces the free-text notes.
func (r *Review) SetNotes(text string) { r.notes = text }

func (r *Review) Notes() string { return r.notes }

// Tags returns the tags in insertion order.
func (r *Review) Tags() []string { return slices.Clone(r.tags) }

func (r *Review) Len() int { return len(r.tags) }

func (r *Review) reset() {
	r.notes = ""
	r.tags = nil
}
