package smpp

import (
	"fmt"

	"github.com/go-smpp/esme/pdu"
)

// CommandError reports an operation refused because the session's
// current state doesn't permit it (e.g. submit_sm while not bound).
// A response that arrives with a non-ROK command_status is not
// reported as CommandError; Session.Send returns it as StatusError.
// Status carries the SMPP status code; Error() delegates to
// StatusError's exhaustive status-to-message table.
type CommandError struct {
	Status pdu.Status
}

func (e *CommandError) Error() string {
	return toError(e.Status).Error()
}

// SmppConnectionError reports a failure in the underlying transport:
// dial failure, a read/write error on the socket, or the peer closing
// the connection.
type SmppConnectionError struct {
	Op  string
	Err error
}

func (e *SmppConnectionError) Error() string {
	return fmt.Sprintf("smpp: %s: %v", e.Op, e.Err)
}

func (e *SmppConnectionError) Unwrap() error {
	return e.Err
}
