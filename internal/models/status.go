package models

import "strings"

// ApprovalStatus is the lifecycle state shared by teacher applications and classes.
type ApprovalStatus string

// Approval lifecycle: Pending -> Accepted | Rejected.
const (
	StatusPending  ApprovalStatus = "Pending"
	StatusAccepted ApprovalStatus = "Accepted"
	StatusRejected ApprovalStatus = "Rejected"
)

// ParseDecision accepts only the two terminal statuses an admin may choose.
func ParseDecision(value string) (ApprovalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "accepted":
		return StatusAccepted, true
	case "rejected":
		return StatusRejected, true
	default:
		return "", false
	}
}
