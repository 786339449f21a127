package errs

import "strings"

// HTTPError is the custom error type for API responses.
//
// Code is machine friendly and only used in logs. PlainText switches the
// response body from JSON to text/plain, which the login route uses.
type HTTPError struct {
	Code      string
	Message   string
	Status    int
	PlainText bool
}

// Response is the JSON body written for an HTTPError.
type Response struct {
	Error string `json:"error"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Code and Status are
// not compared.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// AsPlainText returns a copy of the error rendered as text/plain.
func (e *HTTPError) AsPlainText() *HTTPError {
	clone := *e
	clone.PlainText = true
	return &clone
}

// Body returns the JSON body for the error.
func (e *HTTPError) Body() Response {
	return Response{Error: e.Message}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
