package reminders

import "fmt"

// AccessDeniedError means the user has not granted Reminders access.
// Nothing works without it, so it is surfaced on every operation.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("Reminders access denied: %s", e.Reason)
	}
	return "Reminders access denied. Grant access in System Settings > Privacy & Security > Reminders."
}

// NotFoundError means an identifier did not resolve to a list or reminder.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// SaveError means the store rejected a commit. Reason carries the
// framework-provided description.
type SaveError struct {
	Op     string
	Reason string
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Op, e.Reason)
}

// ValidationError means a parameter was malformed or missing. It is
// raised before any store call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
