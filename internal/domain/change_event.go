package domain

import "time"

// ChangeOperation describes one recorded board operation.
type ChangeOperation string

// ChangeOperation values used by the activity ledger.
const (
	ChangeOperationCreate ChangeOperation = "create"
	ChangeOperationMove   ChangeOperation = "move"
)

// ChangeEvent represents a single activity-log entry for an item.
type ChangeEvent struct {
	ID         int64           `json:"id"`
	ItemID     string          `json:"item_id"`
	Title      string          `json:"title"`
	Operation  ChangeOperation `json:"operation"`
	FromLane   Lane            `json:"from_lane,omitempty"`
	ToLane     Lane            `json:"to_lane"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Summary renders a one-line description of the event.
func (e ChangeEvent) Summary() string {
	switch e.Operation {
	case ChangeOperationCreate:
		return "created " + e.Title
	case ChangeOperationMove:
		return "moved " + e.Title + " " + string(e.FromLane) + " -> " + string(e.ToLane)
	default:
		return string(e.Operation) + " " + e.Title
	}
}
