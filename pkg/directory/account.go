package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

const operationAccount = "account"

// AccountService decides whether directory accounts exist and are enabled.
type AccountService struct {
	client ldap.LDAPClient
	baseDN string
	now    func() time.Time
}

// NewAccountService returns an AccountService searching under baseDN.
func NewAccountService(client ldap.LDAPClient, baseDN string) *AccountService {
	return &AccountService{
		client: client,
		baseDN: baseDN,
		now:    time.Now,
	}
}

// CheckAccount looks up userAccountControl for userName.
//
// The returned status is non-nil whenever the user was found, including when the
// attribute is missing or malformed, so callers can tell "found" from "not found".
func (s *AccountService) CheckAccount(ctx context.Context, userName string) (*structs.AccountStatus, error) {
	log := logger.Logger(ctx).WithField("userName", userName)
	status := &structs.AccountStatus{
		Username:  userName,
		CheckedAt: s.now(),
	}

	resp, err := s.client.Search(ctx, s.baseDN, userName, ldap.UserAccountControlAttribute)
	if err != nil {
		log.WithError(err).Error("an error occurred while checking the user account")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeUnavailable).Inc()
		return nil, unavailable(err)
	}

	entry, err := ldap.FirstEntry(resp)
	if err != nil {
		log.Warn("user not found")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeNotFound).Inc()
		return nil, err
	}
	status.Found = true

	if !ldap.HasAttribute(entry, ldap.UserAccountControlAttribute) {
		log.Warn("'userAccountControl' attribute not found for user")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeIndeterminate).Inc()
		return status, ErrAttributeMissing
	}

	uac, err := ldap.ParseUserAccountControl(entry.GetEqualFoldAttributeValue(ldap.UserAccountControlAttribute))
	if err != nil {
		log.WithError(err).Error("an error occurred while checking the user account")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeIndeterminate).Inc()
		return status, fmt.Errorf("%w: %w", ErrInvalidAccountControl, err)
	}

	status.UserAccountControl = uac
	status.Enabled = !ldap.IsAccountDisabled(uac)
	if status.Enabled {
		log.Info("user account is enabled")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeEnabled).Inc()
	} else {
		log.Info("user account is disabled")
		metrics.LookupsTotal.WithLabelValues(operationAccount, metrics.OutcomeDisabled).Inc()
	}
	return status, nil
}

// IsEnabled reports whether userName exists and is enabled. Every failure, including
// an unreachable directory, reads as false.
func (s *AccountService) IsEnabled(ctx context.Context, userName string) bool {
	status, err := s.CheckAccount(ctx, userName)
	if err != nil {
		return false
	}
	return status.Enabled
}
