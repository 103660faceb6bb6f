// Package errors provides the structured error type used across dx3rd-api.
//
// Every error carries a Code (mapped one-to-one onto gRPC codes), a user-facing
// Message, an optional Cause and free-form Meta. Rule-level rejections also
// carry a Reason in Meta so callers can tell a LimitExceeded toggle apart from
// a CountMismatch confirm without parsing messages.
//
// # Basic Usage
//
//	err := errors.NotFoundf("actor %s not found", actorID)
//	err := errors.InvalidArgument("timing is required").WithMeta("actor_id", actorID)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.UpdateItem(ctx, input); err != nil {
//	    return errors.ItemWriteFailed(actorID, itemID, err)
//	}
//
// # Reasons
//
//	if errors.HasReason(err, errors.ReasonLimitExceeded) {
//	    // warn the user, the selection is unchanged
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound/AlreadyExists with the relevant IDs
//   - Wrap storage errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Return reasoned FailedPrecondition errors for rule rejections
//
// Handler layer:
//   - Convert with ToGRPCError; Meta travels as a google.protobuf.Struct detail
package errors
