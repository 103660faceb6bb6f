package errors

// Reason identifies a rule-level failure more precisely than its Code.
type Reason string

// MetaKeyReason is the Meta key a Reason is stored under.
const MetaKeyReason = "reason"

// Rule failure reasons
const (
	ReasonNoTimingSpecified Reason = "NO_TIMING_SPECIFIED"
	ReasonActorWriteFailed  Reason = "ACTOR_WRITE_FAILED"
	ReasonItemWriteFailed   Reason = "ITEM_WRITE_FAILED"
	ReasonWrongFaceKind     Reason = "WRONG_FACE_KIND"
	ReasonLimitExceeded     Reason = "LIMIT_EXCEEDED"
	ReasonCountMismatch     Reason = "COUNT_MISMATCH"
)

// WithReason tags the error with a rule failure reason
func (e *Error) WithReason(reason Reason) *Error {
	return e.WithMeta(MetaKeyReason, string(reason))
}

// GetReason returns the reason attached to err, or "" when there is none
func GetReason(err error) Reason {
	reason, _ := GetMeta(err)[MetaKeyReason].(string)
	return Reason(reason)
}

// HasReason reports whether err carries the given reason
func HasReason(err error, reason Reason) bool {
	return err != nil && GetReason(err) == reason
}

// NoTimingSpecified is returned when a sweep is requested without a timing key
func NoTimingSpecified() *Error {
	return InvalidArgument("timing is required").WithReason(ReasonNoTimingSpecified)
}

// ActorWriteFailed wraps a failed write against an actor document
func ActorWriteFailed(actorID string, cause error) *Error {
	return Wrapf(cause, "failed to write actor %s", actorID).
		WithReason(ReasonActorWriteFailed).
		WithMeta("actor_id", actorID)
}

// ItemWriteFailed wraps a failed write against one item of an actor
func ItemWriteFailed(actorID, itemID string, cause error) *Error {
	return Wrapf(cause, "failed to write item %s", itemID).
		WithReason(ReasonItemWriteFailed).
		WithMeta("actor_id", actorID).
		WithMeta("item_id", itemID)
}

// WrongFaceKind rejects selecting a die that is not an overflow face
func WrongFaceKind(index, face int) *Error {
	return FailedPreconditionf("die %d shows %d, only overflow faces may be selected", index, face).
		WithReason(ReasonWrongFaceKind).
		WithMeta("index", index).
		WithMeta("face", face)
}

// LimitExceeded rejects growing a selection past its limit
func LimitExceeded(limit int) *Error {
	return FailedPreconditionf("at most %d dice may be selected", limit).
		WithReason(ReasonLimitExceeded).
		WithMeta("limit", limit)
}

// CountMismatch rejects confirming a selection of the wrong size
func CountMismatch(want, got int) *Error {
	return FailedPreconditionf("exactly %d dice must be selected, got %d", want, got).
		WithReason(ReasonCountMismatch).
		WithMeta("want", want).
		WithMeta("got", got)
}
