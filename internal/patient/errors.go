package patient

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFirstName = errors.New("first name is required")
	ErrMissingLastName  = errors.New("last name is required")
	ErrMissingPhone     = errors.New("phone key is required")
	ErrNotFound         = errors.New("patient not found")
)

// PhoneRegisteredError reports that a phone key already belongs to another
// patient. The registered name is surfaced so the caller can tell the user
// who holds the number.
type PhoneRegisteredError struct {
	FirstName string
	LastName  string
}

func (e *PhoneRegisteredError) Error() string {
	return fmt.Sprintf("phone number already registered to %s %s", e.FirstName, e.LastName)
}
