package domain

import (
	"fmt"
	"strings"
)

// Lane classifies an item as active or finished.
type Lane string

// LaneActive and LaneFinished are the only lanes a board has.
const (
	LaneActive   Lane = "active"
	LaneFinished Lane = "finished"
)

// Lanes returns every lane in board display order.
func Lanes() []Lane {
	return []Lane{LaneActive, LaneFinished}
}

// Valid reports whether l is one of the known lanes.
func (l Lane) Valid() bool {
	switch l {
	case LaneActive, LaneFinished:
		return true
	default:
		return false
	}
}

// ParseLane normalizes user input into a lane value.
func ParseLane(raw string) (Lane, error) {
	lane := Lane(strings.ToLower(strings.TrimSpace(raw)))
	if !lane.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidLane, raw)
	}
	return lane, nil
}

// Heading returns the lane heading, e.g. "ACTIVE PROJECTS".
func (l Lane) Heading() string {
	return strings.ToUpper(string(l)) + " PROJECTS"
}
