package osint

import "fmt"

// UnreachableMessage is the only wording a user ever sees for transport
// failures; the underlying cause stays in the logs.
const UnreachableMessage = "Could not reach the investigation service. Make sure the backend is running."

// ServiceError carries an explicit error message returned by the backend.
// Its text is shown to the user verbatim.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// TransportError wraps network and decode failures reaching or reading the
// backend. It is never shown verbatim.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
