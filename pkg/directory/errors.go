package directory

import (
	"errors"
	"fmt"

	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
)

var (
	// ErrUserNotFound is returned when the search matched no entry.
	ErrUserNotFound = ldap.ErrNoUserFound

	// ErrDirectoryUnavailable wraps every failure to talk to the directory.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrAttributeMissing is returned when the user exists but lacks userAccountControl.
	ErrAttributeMissing = errors.New("userAccountControl attribute not found")

	// ErrInvalidAccountControl is returned when userAccountControl is not an integer.
	ErrInvalidAccountControl = errors.New("invalid userAccountControl value")
)

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
}
