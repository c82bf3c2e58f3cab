package models

// JoinRequestStatus is the state of a join request.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestDenied   JoinRequestStatus = "denied"
)

// JoinRequest is a user's request to become a member of a group.
// Pending requests move to approved or denied exactly once.
type JoinRequest struct {
	ID      string
	GroupID string
	UserID  string

	// Message is an optional note from the requester.
	Message string

	Status    JoinRequestStatus
	CreatedAt int64

	// AdminUserID, ProcessedAt and Reason are set when the request is resolved.
	AdminUserID string
	ProcessedAt int64
	Reason      string

	Version int64
}

// IsPending reports whether the request still awaits an admin decision.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JoinRequestPending
}
