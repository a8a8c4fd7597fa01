package ldap

import (
	"fmt"
	"strconv"
	"strings"
)

// UserAccountControlAttribute is the bit-flag attribute holding the account state.
const UserAccountControlAttribute = "userAccountControl"

// User Account Control flags used by this package.
const (
	UACAccountDisabled int32 = 0x00000002 // Account is disabled
	UACNormalAccount   int32 = 0x00000200 // Normal user account
)

// IsAccountDisabled reports whether the disabled bit is set. Every other bit is ignored.
func IsAccountDisabled(userAccountControl int32) bool {
	return userAccountControl&UACAccountDisabled == UACAccountDisabled
}

// ParseUserAccountControl parses the decimal string form of userAccountControl.
func ParseUserAccountControl(value string) (int32, error) {
	uac, err := strconv.ParseInt(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", UserAccountControlAttribute, value, err)
	}
	return int32(uac), nil
}
