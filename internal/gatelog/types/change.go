package types

import "time"

const (
	EntityPerson   = "person"
	EntityLog      = "log"
	EntitySettings = "settings"

	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
	OpPruned  = "pruned"
)

// Change describes one committed mutation of the gate book.
type Change struct {
	Entity string    `json:"entity"`
	Op     string    `json:"op"`
	ID     string    `json:"id,omitempty"`
	Count  int64     `json:"count,omitempty"`
	At     time.Time `json:"at"`
}
