package models

import "time"

// SnapshotEvent announces a successful upstream fetch. It carries counts only.
type SnapshotEvent struct {
	ID        string          `json:"id"`
	Scope     string          `json:"scope"` // "all" or "state:<name>"
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Records   int             `json:"records"`
	States    int             `json:"states"`
	Summary   MovementSummary `json:"summary"`
}
