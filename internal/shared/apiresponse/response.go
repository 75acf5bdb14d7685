// Package apiresponse defines the wire envelope shared by every endpoint.
package apiresponse

// Response is the uniform API envelope. Empty fields are left off the wire
// entirely rather than serialized as null.
type Response struct {
	// Success indicates whether the operation achieved its primary effect.
	Success bool `json:"success"`
	// Message carries a short human-readable summary, mostly on failures.
	Message string `json:"message,omitempty"`
	// Errors lists per-item or taxonomy error strings.
	Errors []string `json:"errors,omitempty"`
	// Data holds the operation payload.
	Data any `json:"data,omitempty"`
}

// OK builds a successful envelope around the given payload.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Failed builds an unsuccessful envelope carrying error strings.
func Failed(errs ...string) Response {
	return Response{Success: false, Errors: errs}
}

// FailedWithMessage builds an unsuccessful envelope with a summary message.
func FailedWithMessage(message string, errs ...string) Response {
	return Response{Success: false, Message: message, Errors: errs}
}
