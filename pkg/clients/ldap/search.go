package ldap

import (
	"context"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

// Search opens a session, runs a subtree search for the user and closes the session
// again before returning. The raw result is returned as the server sent it.
func (l *LDAPConn) Search(
	ctx context.Context, baseDN, identifier string, attributes ...string,
) (*ldap.SearchResult, error) {
	filter := BuildUserFilter(identifier, l.escapeFilter)
	log := logger.Logger(ctx).WithFields(logrus.Fields{
		"baseDN": baseDN,
		"filter": filter,
	})

	start := time.Now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	session, err := l.sessions.OpenSession(ctx)
	if err != nil {
		log.WithError(err).Error("failed to open LDAP session")
		metrics.SearchesTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, err
	}
	defer session.Close()

	span, _ := opentracing.StartSpanFromContext(ctx, "ldap.search")
	span.SetTag("ldap.base_dn", baseDN)
	defer span.Finish()

	searchRequest := ldap.NewSearchRequest(
		baseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		filter,
		attributes,
		nil,
	)

	log.Info("sending LDAP search request")
	resp, err := session.Search(searchRequest)
	if err != nil {
		log.WithError(err).Error("failed to search LDAP")
		metrics.SearchesTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, NewDirectoryProtocolError(OperationSearch, err)
	}

	metrics.SearchesTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	log.WithField("entries", len(resp.Entries)).Debug("LDAP search completed")
	return resp, nil
}

// FirstEntry returns the first entry of a search result, or ErrNoUserFound when
// the search matched nothing.
func FirstEntry(resp *ldap.SearchResult) (*ldap.Entry, error) {
	if resp == nil || len(resp.Entries) == 0 {
		return nil, ErrNoUserFound
	}
	return resp.Entries[0], nil
}
