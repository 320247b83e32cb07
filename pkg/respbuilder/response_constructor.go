package respbuilder

import "context"

// Error builds the error envelope for the given kind. The underlying error
// string goes to the Debug field so the caller still sees the store or
// network failure message.
func Error(ctx context.Context, reasonKind ErrKind, err error) HTTPError {
	stuff := MustExtract(ctx)

	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}

	reason, ok := ReasonMap[reasonKind]
	if !ok {
		return HTTPError{
			Err: ErrorEntity{
				Code:    "XX",
				Message: "unknown error kind",
				Debug:   "", // don't leak the message when the kind is unknown
				TraceID: stuff.AppTraceID,
			},
		}
	}

	return HTTPError{
		Err: ErrorEntity{
			Code:    reason.Code,
			Message: reason.Message,
			Debug:   errMsg,
			TraceID: stuff.AppTraceID,
		},
	}
}

// Message builds the generic {message} acknowledgement body.
func Message(msg string) HTTPMessage {
	return HTTPMessage{Message: msg}
}
