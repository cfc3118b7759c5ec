package oerror

import "fmt"

// MCPIError is the error type returned by the client for problems that are not tied to a single
// request, such as malformed replies or a closed connection.
type MCPIError struct {
	Err string
}

// New formats a new MCPIError.
func New(format string, args ...interface{}) *MCPIError {
	return &MCPIError{Err: fmt.Sprintf(format, args...)}
}

func (e *MCPIError) Error() string {
	return e.Err
}

// RequestError is returned when the server answers a command with "Fail".
type RequestError struct {
	// Command is the command line that failed, without the trailing newline.
	Command string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s failed", e.Command)
}
