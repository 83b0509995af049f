// Package errors defines the domain error values shared across services.
package errors

// DomainError is a typed failure surfaced to callers. HTTP handlers map
// the Code to a status; services compare against the exported values.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
