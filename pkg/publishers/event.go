package publishers

import "time"

// SourceStat summarizes one source's contribution to the snapshot.
type SourceStat struct {
	Key      string `json:"key"`
	Sections int    `json:"sections"`
	Articles int    `json:"articles"`
}

// Event is the payload published downstream when a fresh snapshot is written.
type Event struct {
	Snapshot    string       `json:"snapshot"`
	GeneratedAt time.Time    `json:"generated_at"`
	Sources     []SourceStat `json:"sources"`
}

// NewEvent constructs an Event for the snapshot at path.
func NewEvent(path string, stats []SourceStat) Event {
	return Event{
		Snapshot:    path,
		GeneratedAt: time.Now().UTC(),
		Sources:     stats,
	}
}
