package ldap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"
)

var (
	ErrNoUserFound = errors.New("no LDAP entries found for user")
)

// Operations reported by DirectoryProtocolError.
const (
	OperationConnect = "connect"
	OperationBind    = "bind"
	OperationSearch  = "search"
)

// ErrorCategory groups protocol failures by what went wrong.
type ErrorCategory string

const (
	ErrorCategoryConnection     ErrorCategory = "connection"
	ErrorCategoryTimeout        ErrorCategory = "timeout"
	ErrorCategoryAuthentication ErrorCategory = "authentication"
	ErrorCategoryPermission     ErrorCategory = "permission"
	ErrorCategoryServer         ErrorCategory = "server"
	ErrorCategoryUnknown        ErrorCategory = "unknown"
)

// DirectoryProtocolError is returned when the directory could not be reached,
// refused the bind, or failed a search. It never means "user not found".
type DirectoryProtocolError struct {
	Operation string        // connect, bind or search
	Category  ErrorCategory // failure category
	Code      uint16        // LDAP result code, 0 if the failure was not an LDAP result
	Cause     error         // underlying error
}

func (e *DirectoryProtocolError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("LDAP %s failed (code %d, %s): %v", e.Operation, e.Code, e.Category, e.Cause)
	}
	return fmt.Sprintf("LDAP %s failed (%s): %v", e.Operation, e.Category, e.Cause)
}

func (e *DirectoryProtocolError) Unwrap() error {
	return e.Cause
}

// NewDirectoryProtocolError wraps err as a protocol failure of the given operation.
func NewDirectoryProtocolError(operation string, err error) *DirectoryProtocolError {
	protoErr := &DirectoryProtocolError{
		Operation: operation,
		Cause:     err,
	}

	var ldapErr *ldap.Error
	if errors.As(err, &ldapErr) {
		protoErr.Code = ldapErr.ResultCode
		protoErr.Category = categorizeResultCode(ldapErr.ResultCode)
	} else {
		protoErr.Category = categorizeGenericError(err)
	}

	return protoErr
}

// IsProtocolError reports whether err is, or wraps, a DirectoryProtocolError.
func IsProtocolError(err error) bool {
	var protoErr *DirectoryProtocolError
	return errors.As(err, &protoErr)
}

func categorizeResultCode(code uint16) ErrorCategory {
	switch code {
	case ldap.LDAPResultInvalidCredentials,
		ldap.LDAPResultInappropriateAuthentication,
		ldap.LDAPResultStrongAuthRequired,
		ldap.ErrorEmptyPassword:
		return ErrorCategoryAuthentication

	case ldap.LDAPResultInsufficientAccessRights,
		ldap.LDAPResultUnwillingToPerform:
		return ErrorCategoryPermission

	case ldap.LDAPResultUnavailable,
		ldap.LDAPResultBusy,
		ldap.LDAPResultOperationsError,
		ldap.LDAPResultAdminLimitExceeded,
		ldap.LDAPResultNoSuchObject:
		return ErrorCategoryServer

	case ldap.LDAPResultTimeLimitExceeded:
		return ErrorCategoryTimeout

	case ldap.ErrorNetwork,
		ldap.LDAPResultProtocolError:
		return ErrorCategoryConnection

	default:
		return ErrorCategoryUnknown
	}
}

func categorizeGenericError(err error) ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorCategoryTimeout
		}
		return ErrorCategoryConnection
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "broken pipe") {
		return ErrorCategoryConnection
	}
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out") {
		return ErrorCategoryTimeout
	}

	return ErrorCategoryUnknown
}
