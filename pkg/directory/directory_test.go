package directory

import (
	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
)

const testBaseDN = "DC=example,DC=com"

func int32Ptr(v int32) *int32 {
	return &v
}

func fakeUsers() []ldap.FakeUser {
	return []ldap.FakeUser{
		{
			SAMAccountName:     "jdoe",
			DistinguishedName:  "CN=John Doe,OU=Users,DC=example,DC=com",
			GivenName:          "John",
			Sn:                 "Doe",
			DisplayName:        "John Doe",
			Title:              "Software Engineer",
			Mail:               "jdoe@example.com",
			UserAccountControl: int32Ptr(512),
		},
		{
			SAMAccountName:     "asmith",
			DistinguishedName:  "CN=Alice Smith,OU=Users,DC=example,DC=com",
			GivenName:          "Alice",
			Sn:                 "Smith",
			DisplayName:        "Alice Smith",
			UserAccountControl: int32Ptr(514),
		},
		{
			SAMAccountName:    "bjones",
			DistinguishedName: "CN=Bob Jones,OU=Contractors,DC=example,DC=com",
			GivenName:         "Bob",
		},
	}
}
