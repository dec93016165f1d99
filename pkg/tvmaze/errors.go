package tvmaze

import "fmt"

// NetworkError is returned when a request to the catalog could not complete
type NetworkError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is()
func (e *NetworkError) Is(target error) bool {
	_, ok := target.(*NetworkError)
	return ok
}

// ServiceError is returned when the catalog answers with a non-success status or a body that cannot be decoded
type ServiceError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s responded %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s responded %d", e.Endpoint, e.StatusCode)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is allows for error checking with errors.Is()
func (e *ServiceError) Is(target error) bool {
	_, ok := target.(*ServiceError)
	return ok
}
