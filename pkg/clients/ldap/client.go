package ldap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-ldap/ldap/v3"
	"github.com/opentracing/opentracing-go"

	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

const (
	// DefaultPort is the plain LDAP port used when the server has no explicit port.
	DefaultPort = 389
)

// Config holds everything needed to reach and authenticate against the directory.
type Config struct {
	Server   string `yaml:"server"`
	Port     int    `yaml:"port"`
	BaseDN   string `yaml:"baseDN"`
	Domain   string `yaml:"domain"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Timeout bounds the dial and every request on a session. Zero waits forever.
	Timeout time.Duration `yaml:"timeout"`

	// EscapeFilter escapes filter special characters in identifiers.
	// Off by default: identifiers are substituted verbatim.
	EscapeFilter bool `yaml:"escapeFilter"`

	// FixturePath switches the client to the in-memory fake directory loaded from this file.
	FixturePath string `yaml:"fixturePath"`
}

// URL returns the ldap:// URL of the server. Servers given as full URLs are used as is.
func (c Config) URL() string {
	if strings.Contains(c.Server, "://") {
		return c.Server
	}
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("ldap://%s", net.JoinHostPort(c.Server, strconv.Itoa(port)))
}

// BindUsername returns the domain qualified account used for the simple bind.
func (c Config) BindUsername() string {
	if c.Domain == "" {
		return c.Username
	}
	return fmt.Sprintf(`%s\%s`, c.Domain, c.Username)
}

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

// Session is an authenticated connection to the directory server.
// It is owned by a single search and closed when that search returns.
type Session interface {
	Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close()
}

// SessionProvider opens a new authenticated session on every call.
type SessionProvider interface {
	OpenSession(ctx context.Context) (Session, error)
}

// LDAPClient is the directory capability the query services depend on.
// It is implemented by the live client and by FakeDirectory.
type LDAPClient interface {
	// Search looks up the user whose sAMAccountName is identifier under baseDN,
	// returning only the requested attributes.
	Search(ctx context.Context, baseDN, identifier string, attributes ...string) (*ldap.SearchResult, error)
}

type ldapSession struct {
	conn *ldap.Conn
}

func (s *ldapSession) Search(searchRequest *ldap.SearchRequest) (*ldap.SearchResult, error) {
	return s.conn.Search(searchRequest)
}

func (s *ldapSession) Close() {
	s.conn.Close()
}

// SessionDialer dials and binds a fresh connection for each session.
type SessionDialer struct {
	url      string
	username string
	password string
	timeout  time.Duration
}

// NewSessionDialer returns a SessionProvider for the configured server and credentials.
func NewSessionDialer(cfg Config) *SessionDialer {
	return &SessionDialer{
		url:      cfg.URL(),
		username: cfg.BindUsername(),
		password: cfg.Password,
		timeout:  cfg.Timeout,
	}
}

// OpenSession connects to the server and performs a synchronous simple bind.
// go-ldap speaks protocol version 3 and never chases referrals, so no further
// session options are needed.
func (d *SessionDialer) OpenSession(ctx context.Context) (Session, error) {
	log := logger.Logger(ctx).WithField("server", d.url)

	span, _ := opentracing.StartSpanFromContext(ctx, "ldap.open_session")
	defer span.Finish()

	if err := ctx.Err(); err != nil {
		metrics.SessionsTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, NewDirectoryProtocolError(OperationConnect, err)
	}

	conn, err := ldap.DialURL(d.url, ldap.DialWithDialer(&net.Dialer{Timeout: d.timeout}))
	if err != nil {
		log.WithError(err).Error("failed to connect to LDAP server")
		metrics.SessionsTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, NewDirectoryProtocolError(OperationConnect, err)
	}
	if d.timeout > 0 {
		conn.SetTimeout(d.timeout)
	}

	if err := conn.Bind(d.username, d.password); err != nil {
		conn.Close()
		log.WithError(err).Error("failed to bind to LDAP server")
		metrics.SessionsTotal.WithLabelValues(metrics.StatusFailure).Inc()
		return nil, NewDirectoryProtocolError(OperationBind, err)
	}

	log.Info("successfully connected to LDAP server")
	metrics.SessionsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return &ldapSession{conn: conn}, nil
}

// LDAPConn is the live LDAPClient. It holds no connection of its own.
type LDAPConn struct {
	sessions     SessionProvider
	escapeFilter bool
}

// NewLDAPConn returns a live client that opens one session per search.
func NewLDAPConn(sessions SessionProvider, escapeFilter bool) *LDAPConn {
	return &LDAPConn{
		sessions:     sessions,
		escapeFilter: escapeFilter,
	}
}

// InitLdap builds the LDAPClient described by the configuration.
func InitLdap(ldapConfig Config) (LDAPClient, error) {
	if ldapConfig.FixturePath != "" {
		return LoadFakeDirectory(ldapConfig.FixturePath)
	}
	if ldapConfig.Server == "" {
		return nil, errors.New("ldap server is required")
	}
	if ldapConfig.BaseDN == "" {
		return nil, errors.New("ldap baseDN is required")
	}

	return NewLDAPConn(NewSessionDialer(ldapConfig), ldapConfig.EscapeFilter), nil
}
