// Package analysis provides the client and protocol types for handing
// reviewed captures to a stroke-analysis daemon over a Unix socket using
// NDJSON.
package analysis

// Commands understood by the daemon.
const (
	CmdAnalyze   = "analyze"
	CmdStatus    = "status"
	CmdSubscribe = "subscribe"
)

// Command is sent from a client to the daemon.
type Command struct {
	Cmd             string   `json:"cmd"`
	Stroke          string   `json:"stroke,omitempty"`
	MediaRef        string   `json:"mediaRef,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	DurationSeconds *int     `json:"durationSeconds,omitempty"`
	Events          []string `json:"events,omitempty"`
}

// Response is returned by the daemon after processing a command.
type Response struct {
	OK         bool   `json:"ok"`
	AnalysisID string `json:"analysisId,omitempty"`
	Status     string `json:"status,omitempty"`
	Queued     *int   `json:"queued,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Event is streamed from the daemon to subscribed clients.
type Event struct {
	Event      string `json:"event"`
	AnalysisID string `json:"analysisId,omitempty"`
	Stroke     string `json:"stroke,omitempty"`
	Status     string `json:"status,omitempty"`
	Score      *int   `json:"score,omitempty"`
	Message    string `json:"message,omitempty"`
}

// IntPtr returns a pointer to an int value. Convenience for building commands.
func IntPtr(n int) *int { return &n }
