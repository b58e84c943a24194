//go:build !darwin

package eventkit

import "errors"

// New returns the EventKit-backed API. Reminders live in the macOS data
// store, so there is nothing to back the API with on other platforms.
func New() (API, error) {
	return nil, errors.New("the Reminders store is only available on macOS")
}
