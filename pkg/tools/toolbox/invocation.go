package toolbox

import "encoding/json"

// ErrorKind classifies a failed invocation.
type ErrorKind string

const (
	// KindBadRequest marks failures caused by the caller: unknown tool names
	// and malformed parameters.
	KindBadRequest ErrorKind = "bad_request"
	// KindInternal marks failures raised by the tool handler.
	KindInternal ErrorKind = "internal"
)

// Invocation is a request to run a named tool.
type Invocation struct {
	ToolName   string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// Result is the outcome of an invocation. On success Payload holds the
// handler's return value; otherwise IsError is set and Kind and Message
// describe the failure.
type Result struct {
	Tool    string
	Payload any
	IsError bool
	Kind    ErrorKind
	Message string
}
