package domain

// AssignmentStatus tracks a musician's booking lifecycle for an event.
// Only ACCEPTED assignments count toward double-booking conflicts.
type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "PENDING"
	StatusAccepted  AssignmentStatus = "ACCEPTED"
	StatusDeclined  AssignmentStatus = "DECLINED"
	StatusCancelled AssignmentStatus = "CANCELLED"
)

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}
