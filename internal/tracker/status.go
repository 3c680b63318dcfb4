package tracker

import "fmt"

// Status is the application state of a single job. The string values are
// part of the stored-state contract.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// All lists every status in display order.
func All() []Status {
	return []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}
