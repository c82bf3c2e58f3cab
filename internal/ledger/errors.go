package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the broad category of a ledger failure. Transports map kinds to
// status codes.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindInvariantViolation Kind = "INVARIANT_VIOLATION"
	KindPreconditionFailed Kind = "PRECONDITION_FAILED"
	KindAuthorization      Kind = "AUTHORIZATION"
)

// Reason identifies the specific failure.
type Reason string

const (
	ReasonUserNotFound      Reason = "UserNotFound"
	ReasonGroupNotFound     Reason = "GroupNotFound"
	ReasonBucketNotFound    Reason = "BucketNotFound"
	ReasonNotMember         Reason = "NotMember"
	ReasonRequestNotFound   Reason = "RequestNotFound"
	ReasonMembershipExists  Reason = "MembershipExists"
	ReasonAdminConflict     Reason = "AdminConflict"
	ReasonDuplicateRequest  Reason = "DuplicateRequest"
	ReasonAlreadyMember     Reason = "AlreadyMember"
	ReasonEmailExists       Reason = "EmailExists"
	ReasonPositiveBalance   Reason = "PositiveBalanceRejected"
	ReasonBalanceOverflow   Reason = "BalanceOverflow"
	ReasonKittyOverflow     Reason = "KittyOverflow"
	ReasonNoActiveBucket    Reason = "NoActiveBucket"
	ReasonInsufficientUnits Reason = "InsufficientUnits"
	ReasonInvalidQuantity   Reason = "InvalidQuantity"
	ReasonZeroAmount        Reason = "ZeroAmount"
	ReasonNonPositiveAmount Reason = "NonPositiveAmount"
	ReasonNotPending        Reason = "NotPending"
	ReasonMissingReason     Reason = "MissingReason"
	ReasonNotAdmin          Reason = "NotAdmin"
)

var reasonKinds = map[Reason]Kind{
	ReasonUserNotFound:      KindNotFound,
	ReasonGroupNotFound:     KindNotFound,
	ReasonBucketNotFound:    KindNotFound,
	ReasonNotMember:         KindNotFound,
	ReasonRequestNotFound:   KindNotFound,
	ReasonMembershipExists:  KindConflict,
	ReasonAdminConflict:     KindConflict,
	ReasonDuplicateRequest:  KindConflict,
	ReasonAlreadyMember:     KindConflict,
	ReasonEmailExists:       KindConflict,
	ReasonPositiveBalance:   KindInvariantViolation,
	ReasonBalanceOverflow:   KindInvariantViolation,
	ReasonKittyOverflow:     KindInvariantViolation,
	ReasonNoActiveBucket:    KindPreconditionFailed,
	ReasonInsufficientUnits: KindPreconditionFailed,
	ReasonInvalidQuantity:   KindPreconditionFailed,
	ReasonZeroAmount:        KindPreconditionFailed,
	ReasonNonPositiveAmount: KindPreconditionFailed,
	ReasonNotPending:        KindPreconditionFailed,
	ReasonMissingReason:     KindPreconditionFailed,
	ReasonNotAdmin:          KindAuthorization,
}

// Error is a typed ledger failure. It carries the ids involved and, for
// arithmetic failures, the current and requested values.
type Error struct {
	Kind    Kind
	Reason  Reason
	Message string

	UserID   string
	GroupID  string
	EntityID string // bucket, request or other entity the failure is about

	// Current is the stored value the request was checked against
	// (balance, remaining units, ...).
	Current int64
	// Requested is the value the caller asked for.
	Requested int64
	// Limit is the largest value that would have been accepted, where one exists.
	Limit int64
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Reason))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	var ids []string
	if e.UserID != "" {
		ids = append(ids, "user="+e.UserID)
	}
	if e.GroupID != "" {
		ids = append(ids, "group="+e.GroupID)
	}
	if e.EntityID != "" {
		ids = append(ids, "id="+e.EntityID)
	}
	if len(ids) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(ids, ", "))
	}
	return b.String()
}

// Is matches errors by reason, so errors.Is(err, ErrNotMember) works for any
// NotMember failure regardless of the ids it carries.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Reason == e.Reason
}

func newError(reason Reason, format string, args ...any) *Error {
	return &Error{
		Kind:    reasonKinds[reason],
		Reason:  reason,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *Error) forUser(userID, groupID string) *Error {
	e.UserID = userID
	e.GroupID = groupID
	return e
}

func (e *Error) about(entityID string) *Error {
	e.EntityID = entityID
	return e
}

func (e *Error) values(current, requested, limit int64) *Error {
	e.Current = current
	e.Requested = requested
	e.Limit = limit
	return e
}

func sentinel(reason Reason) *Error {
	return &Error{Kind: reasonKinds[reason], Reason: reason}
}

// Sentinels for errors.Is.
var (
	ErrUserNotFound      = sentinel(ReasonUserNotFound)
	ErrGroupNotFound     = sentinel(ReasonGroupNotFound)
	ErrBucketNotFound    = sentinel(ReasonBucketNotFound)
	ErrNotMember         = sentinel(ReasonNotMember)
	ErrRequestNotFound   = sentinel(ReasonRequestNotFound)
	ErrMembershipExists  = sentinel(ReasonMembershipExists)
	ErrAdminConflict     = sentinel(ReasonAdminConflict)
	ErrDuplicateRequest  = sentinel(ReasonDuplicateRequest)
	ErrAlreadyMember     = sentinel(ReasonAlreadyMember)
	ErrEmailExists       = sentinel(ReasonEmailExists)
	ErrPositiveBalance   = sentinel(ReasonPositiveBalance)
	ErrBalanceOverflow   = sentinel(ReasonBalanceOverflow)
	ErrKittyOverflow     = sentinel(ReasonKittyOverflow)
	ErrNoActiveBucket    = sentinel(ReasonNoActiveBucket)
	ErrInsufficientUnits = sentinel(ReasonInsufficientUnits)
	ErrInvalidQuantity   = sentinel(ReasonInvalidQuantity)
	ErrZeroAmount        = sentinel(ReasonZeroAmount)
	ErrNonPositiveAmount = sentinel(ReasonNonPositiveAmount)
	ErrNotPending        = sentinel(ReasonNotPending)
	ErrMissingReason     = sentinel(ReasonMissingReason)
	ErrNotAdmin          = sentinel(ReasonNotAdmin)
)

// AsError extracts a ledger *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// KindOf returns the failure kind of err, or "" for infrastructure errors.
func KindOf(err error) Kind {
	if le, ok := AsError(err); ok {
		return le.Kind
	}
	return ""
}
