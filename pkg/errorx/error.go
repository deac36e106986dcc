package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
	Data    any
}

var Unknown = Error{Code: 100000, Message: "Request failed"}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// WithData attaches a structured payload which is returned to the client
// besides the error message.
func (e Error) WithData(data any) Error {
	e.Data = data
	return e
}
