package errors

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if !As(err, &customErr) {
		return status.Error(codes.Internal, err.Error())
	}

	st := status.New(customErr.Code.GRPCCode(), customErr.Message)
	if len(customErr.Meta) > 0 {
		details, detailErr := metaDetails(customErr)
		if detailErr == nil {
			if withDetails, attachErr := st.WithDetails(details); attachErr == nil {
				st = withDetails
			}
		}
	}

	return st.Err()
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		if meta := details.GetFields()["meta"].GetStructValue(); meta != nil {
			customErr.Meta = meta.AsMap()
		}
		break
	}

	return customErr
}

// metaDetails packs the error metadata into a google.protobuf.Struct.
// Values structpb cannot represent are stringified.
func metaDetails(e *Error) (*structpb.Struct, error) {
	meta := make(map[string]interface{}, len(e.Meta))
	for k, v := range e.Meta {
		if strs, ok := v.([]string); ok {
			list := make([]interface{}, len(strs))
			for i, str := range strs {
				list[i] = str
			}
			v = list
		}
		if _, err := structpb.NewValue(v); err != nil {
			meta[k] = fmt.Sprint(v)
			continue
		}
		meta[k] = v
	}

	return structpb.NewStruct(map[string]interface{}{
		"code":    string(e.Code),
		"message": e.Message,
		"meta":    meta,
	})
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOK:
		return codes.OK
	case CodeCanceled:
		return codes.Canceled
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeDeadlineExceeded:
		return codes.DeadlineExceeded
	case CodeNotFound:
		return codes.NotFound
	case CodeAlreadyExists:
		return codes.AlreadyExists
	case CodePermissionDenied:
		return codes.PermissionDenied
	case CodeResourceExhausted:
		return codes.ResourceExhausted
	case CodeFailedPrecondition:
		return codes.FailedPrecondition
	case CodeAborted:
		return codes.Aborted
	case CodeOutOfRange:
		return codes.OutOfRange
	case CodeUnimplemented:
		return codes.Unimplemented
	case CodeInternal:
		return codes.Internal
	case CodeUnavailable:
		return codes.Unavailable
	case CodeDataLoss:
		return codes.DataLoss
	case CodeUnauthenticated:
		return codes.Unauthenticated
	default:
		return codes.Unknown
	}
}

// grpcCodeToCode converts a gRPC code to our error code
func grpcCodeToCode(grpcCode codes.Code) Code {
	for _, c := range []Code{
		CodeOK, CodeCanceled, CodeInvalidArgument, CodeDeadlineExceeded, CodeNotFound,
		CodeAlreadyExists, CodePermissionDenied, CodeResourceExhausted, CodeFailedPrecondition,
		CodeAborted, CodeOutOfRange, CodeUnimplemented, CodeInternal, CodeUnavailable,
		CodeDataLoss, CodeUnauthenticated,
	} {
		if c.GRPCCode() == grpcCode {
			return c
		}
	}
	return CodeInternal
}
