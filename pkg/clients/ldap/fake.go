package ldap

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

// FakeUser is one directory user in a fixture file.
type FakeUser struct {
	SAMAccountName     string `json:"sAMAccountName"`
	DistinguishedName  string `json:"distinguishedName"`
	GivenName          string `json:"givenName"`
	Sn                 string `json:"sn"`
	DisplayName        string `json:"displayName"`
	Title              string `json:"title"`
	Mail               string `json:"mail"`
	UserAccountControl *int32 `json:"userAccountControl"`
}

// FakeData is the layout of a fixture file.
type FakeData struct {
	Users []FakeUser `json:"users"`
}

// FakeDirectory is an in-memory LDAPClient backed by fixture users.
// It is safe for concurrent use as long as FailWith is not called concurrently with Search.
type FakeDirectory struct {
	users []FakeUser
	err   error
}

// NewFakeDirectory returns a fake directory serving the given users.
func NewFakeDirectory(users []FakeUser) *FakeDirectory {
	return &FakeDirectory{users: users}
}

// LoadFakeDirectory reads a JSON fixture file into a FakeDirectory.
func LoadFakeDirectory(path string) (*FakeDirectory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fake ldap data: %w", err)
	}

	var data FakeData
	if err := json.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("failed to parse fake ldap data: %w", err)
	}

	return NewFakeDirectory(data.Users), nil
}

// FailWith makes every following search fail with err wrapped as a protocol error.
// A nil err restores normal behaviour.
func (f *FakeDirectory) FailWith(err error) {
	f.err = err
}

// Search implements LDAPClient. Account names match case-insensitively, as in Active Directory.
func (f *FakeDirectory) Search(
	ctx context.Context, baseDN, identifier string, attributes ...string,
) (*ldap.SearchResult, error) {
	log := logger.Logger(ctx).WithField("filter", BuildUserFilter(identifier, false))
	if f.err != nil {
		log.WithError(f.err).Error("fake directory search failed")
		return nil, NewDirectoryProtocolError(OperationSearch, f.err)
	}

	resp := &ldap.SearchResult{}
	for _, u := range f.users {
		if !strings.EqualFold(u.SAMAccountName, identifier) || !u.inScope(baseDN) {
			continue
		}
		resp.Entries = append(resp.Entries, u.entry(baseDN, attributes))
	}

	log.WithField("entries", len(resp.Entries)).Debug("fake directory search completed")
	return resp, nil
}

func (u FakeUser) dn(baseDN string) string {
	if u.DistinguishedName != "" {
		return u.DistinguishedName
	}
	return fmt.Sprintf("CN=%s,%s", u.SAMAccountName, baseDN)
}

func (u FakeUser) inScope(baseDN string) bool {
	if baseDN == "" || u.DistinguishedName == "" {
		return true
	}
	return strings.HasSuffix(strings.ToLower(u.DistinguishedName), strings.ToLower(baseDN))
}

func (u FakeUser) attributes() map[string]string {
	attrs := map[string]string{
		"sAMAccountName": u.SAMAccountName,
		"givenName":      u.GivenName,
		"sn":             u.Sn,
		"displayName":    u.DisplayName,
		"title":          u.Title,
		"mail":           u.Mail,
	}
	if u.UserAccountControl != nil {
		attrs[UserAccountControlAttribute] = strconv.FormatInt(int64(*u.UserAccountControl), 10)
	}
	return attrs
}

// entry builds the entry the server would return: only requested attributes that have a value.
func (u FakeUser) entry(baseDN string, requested []string) *ldap.Entry {
	all := u.attributes()
	values := make(map[string][]string, len(requested))
	for _, name := range requested {
		for attr, value := range all {
			if strings.EqualFold(attr, name) && value != "" {
				values[attr] = []string{value}
			}
		}
	}
	return ldap.NewEntry(u.dn(baseDN), values)
}
