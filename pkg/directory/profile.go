package directory

import (
	"context"
	"errors"

	goldap "github.com/go-ldap/ldap/v3"

	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

const (
	operationProfile = "profile"

	AttributeGivenName   = "givenName"
	AttributeSurname     = "sn"
	AttributeDisplayName = "displayName"
	AttributeTitle       = "title"
	AttributeMail        = "mail"
)

// ProfileAttributes is the attribute set requested for a profile fetch.
var ProfileAttributes = []string{AttributeTitle, AttributeGivenName, AttributeSurname, AttributeDisplayName}

// ProfileService fetches user profiles from the directory.
type ProfileService struct {
	client     ldap.LDAPClient
	baseDN     string
	attributes []string
}

// NewProfileService returns a ProfileService searching under baseDN.
func NewProfileService(client ldap.LDAPClient, baseDN string) *ProfileService {
	return &ProfileService{
		client:     client,
		baseDN:     baseDN,
		attributes: ProfileAttributes,
	}
}

// WithEmail returns a copy of the service that also requests the mail attribute.
func (s *ProfileService) WithEmail() *ProfileService {
	attrs := make([]string, 0, len(s.attributes)+1)
	attrs = append(attrs, s.attributes...)
	attrs = append(attrs, AttributeMail)
	return &ProfileService{
		client:     s.client,
		baseDN:     s.baseDN,
		attributes: attrs,
	}
}

// EmptyProfile returns a profile with every field set to the sentinel.
func EmptyProfile() *structs.UserProfile {
	return &structs.UserProfile{
		EmailAddress: ldap.NoData,
		UserName:     ldap.NoData,
		UserFamily:   ldap.NoData,
		UserFullName: ldap.NoData,
		UserTitle:    ldap.NoData,
	}
}

// DecodeProfile maps a directory entry onto a UserProfile.
func DecodeProfile(entry *goldap.Entry) *structs.UserProfile {
	return &structs.UserProfile{
		EmailAddress: ldap.ExtractAttribute(entry, AttributeMail),
		UserName:     ldap.ExtractAttribute(entry, AttributeGivenName),
		UserFamily:   ldap.ExtractAttribute(entry, AttributeSurname),
		UserFullName: ldap.ExtractAttribute(entry, AttributeDisplayName),
		UserTitle:    ldap.ExtractAttribute(entry, AttributeTitle),
	}
}

// LookupProfile fetches the profile of userName. It returns ErrUserNotFound when the
// directory has no such user and ErrDirectoryUnavailable when the search failed.
func (s *ProfileService) LookupProfile(ctx context.Context, userName string) (*structs.UserProfile, error) {
	log := logger.Logger(ctx).WithField("userName", userName)

	resp, err := s.client.Search(ctx, s.baseDN, userName, s.attributes...)
	if err != nil {
		log.WithError(err).Error("LDAP error occurred while fetching user profile")
		metrics.LookupsTotal.WithLabelValues(operationProfile, metrics.OutcomeUnavailable).Inc()
		return nil, unavailable(err)
	}

	entry, err := ldap.FirstEntry(resp)
	if err != nil {
		log.Warn("user not found in directory")
		metrics.LookupsTotal.WithLabelValues(operationProfile, metrics.OutcomeNotFound).Inc()
		return nil, err
	}

	profile := DecodeProfile(entry)
	log.WithField("fullName", profile.UserFullName).
		WithField("title", profile.UserTitle).
		Info("user found in directory")
	metrics.LookupsTotal.WithLabelValues(operationProfile, metrics.OutcomeFound).Inc()
	return profile, nil
}

// FetchProfile is LookupProfile without an error channel: a missing user and an
// unreachable directory both yield EmptyProfile. Failures are only visible in the logs.
func (s *ProfileService) FetchProfile(ctx context.Context, userName string) *structs.UserProfile {
	profile, err := s.LookupProfile(ctx, userName)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			logger.Logger(ctx).WithField("userName", userName).WithError(err).
				Debug("returning empty profile after lookup failure")
		}
		return EmptyProfile()
	}
	return profile
}
