package models

import "time"

// Snapshot is a collected reference map persisted for a root entry.
type Snapshot struct {
	ID        string       `json:"id"`
	RootID    string       `json:"root_id"`
	CreatedAt time.Time    `json:"created_at"`
	Source    string       `json:"source,omitempty"`
	Entries   ReferenceMap `json:"entries"`
}

// SnapshotInfo is the listing view of a snapshot without its entries.
type SnapshotInfo struct {
	ID         string    `json:"id"`
	RootID     string    `json:"root_id"`
	CreatedAt  time.Time `json:"created_at"`
	Source     string    `json:"source,omitempty"`
	EntryCount int       `json:"entry_count"`
}
