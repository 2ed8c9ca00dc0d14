package services

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// UnavailableError reports a feature whose backing service is not configured.
type UnavailableError struct{ Message string }

func (e *UnavailableError) Error() string { return e.Message }
