// Package db keeps the player's recorded sessions and queued analysis
// requests in a local SQLite database.
package db

import "time"

// Session statuses.
const (
	StatusSaved    = "saved"
	StatusUploaded = "uploaded"
)

// Analysis request statuses.
const (
	AnalysisQueued = "queued"
)

// Session is a reviewed capture kept in the library.
type Session struct {
	ID              string
	Stroke          string
	Notes           string
	MediaRef        string
	DurationSeconds int
	Status          string
	Tags            []string
	CreatedAt       time.Time
}

// AnalysisRequest is a capture waiting for stroke analysis.
type AnalysisRequest struct {
	ID        string
	SessionID string
	Stroke    string
	Status    string
	CreatedAt time.Time
}
