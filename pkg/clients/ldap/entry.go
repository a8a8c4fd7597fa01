package ldap

import "github.com/go-ldap/ldap/v3"

// NoData is returned for attributes that are missing or have no values.
const NoData = "No Data"

// ExtractAttribute returns the first value of the named attribute, or NoData.
// Attribute names match case-insensitively.
func ExtractAttribute(entry *ldap.Entry, attributeName string) string {
	if entry == nil {
		return NoData
	}
	values := entry.GetEqualFoldAttributeValues(attributeName)
	if len(values) == 0 {
		return NoData
	}
	return values[0]
}

// HasAttribute reports whether the entry carries at least one value for the attribute.
func HasAttribute(entry *ldap.Entry, attributeName string) bool {
	return entry != nil && len(entry.GetEqualFoldAttributeValues(attributeName)) > 0
}
