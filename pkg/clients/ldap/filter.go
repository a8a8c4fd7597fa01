package ldap

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// UserFilterTemplate matches user objects by their short account name.
const UserFilterTemplate = "(&(objectClass=user)(sAMAccountName=%s))"

// BuildUserFilter substitutes identifier into UserFilterTemplate.
//
// Without escape the identifier is used verbatim, so '*', '(', ')', '\' and NUL keep
// their filter meaning. Callers that take identifiers from untrusted input should
// enable escaping (Config.EscapeFilter).
func BuildUserFilter(identifier string, escape bool) string {
	if escape {
		identifier = ldap.EscapeFilter(identifier)
	}
	return fmt.Sprintf(UserFilterTemplate, identifier)
}
