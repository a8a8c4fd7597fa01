package ldap

import (
	"net"
	"sync"
	"testing"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/go-ldap/ldap/v3"
)

// recordedSearch is what the test server saw in one search request.
type recordedSearch struct {
	BaseDN     string
	Scope      int64
	Filter     string
	Attributes []string
}

// testDirectoryServer answers simple binds and searches well enough for go-ldap.
type testDirectoryServer struct {
	listener net.Listener
	bindDN   string
	password string
	entries  []*ldap.Entry

	mu       sync.Mutex
	binds    []string
	searches []recordedSearch
	closed   int
}

func startTestDirectoryServer(t *testing.T, bindDN, password string, entries ...*ldap.Entry) *testDirectoryServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start test LDAP server: %v", err)
	}
	s := &testDirectoryServer{
		listener: ln,
		bindDN:   bindDN,
		password: password,
		entries:  entries,
	}
	go s.serve()
	t.Cleanup(func() {
		_ = ln.Close()
	})
	return s
}

func (s *testDirectoryServer) Addr() string {
	return s.listener.Addr().String()
}

func (s *testDirectoryServer) Searches() []recordedSearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]recordedSearch(nil), s.searches...)
}

func (s *testDirectoryServer) Binds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.binds...)
}

func (s *testDirectoryServer) Closed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *testDirectoryServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *testDirectoryServer) handle(conn net.Conn) {
	defer func() {
		_ = conn.Close()
		s.mu.Lock()
		s.closed++
		s.mu.Unlock()
	}()

	for {
		packet, err := ber.ReadPacket(conn)
		if err != nil || len(packet.Children) < 2 {
			return
		}
		messageID, _ := packet.Children[0].Value.(int64)
		op := packet.Children[1]

		switch op.Tag {
		case ber.Tag(ldap.ApplicationBindRequest):
			name, _ := op.Children[1].Value.(string)
			password := op.Children[2].Data.String()
			s.mu.Lock()
			s.binds = append(s.binds, name)
			s.mu.Unlock()

			code := int64(ldap.LDAPResultSuccess)
			if name != s.bindDN || password != s.password {
				code = int64(ldap.LDAPResultInvalidCredentials)
			}
			if !s.write(conn, resultPacket(messageID, ldap.ApplicationBindResponse, code)) {
				return
			}

		case ber.Tag(ldap.ApplicationSearchRequest):
			s.recordSearch(op)
			for _, entry := range s.entries {
				if !s.write(conn, entryPacket(messageID, entry)) {
					return
				}
			}
			if !s.write(conn, resultPacket(messageID, ldap.ApplicationSearchResultDone, int64(ldap.LDAPResultSuccess))) {
				return
			}

		case ber.Tag(ldap.ApplicationUnbindRequest):
			return
		}
	}
}

func (s *testDirectoryServer) recordSearch(op *ber.Packet) {
	search := recordedSearch{}
	search.BaseDN, _ = op.Children[0].Value.(string)
	search.Scope, _ = op.Children[1].Value.(int64)
	if filter, err := ldap.DecompileFilter(op.Children[6]); err == nil {
		search.Filter = filter
	}
	for _, attr := range op.Children[7].Children {
		name, _ := attr.Value.(string)
		search.Attributes = append(search.Attributes, name)
	}
	s.mu.Lock()
	s.searches = append(s.searches, search)
	s.mu.Unlock()
}

func (s *testDirectoryServer) write(conn net.Conn, packet *ber.Packet) bool {
	_, err := conn.Write(packet.Bytes())
	return err == nil
}

func envelope(messageID int64, op *ber.Packet) *ber.Packet {
	packet := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "LDAP Response")
	packet.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, messageID, "Message ID"))
	packet.AppendChild(op)
	return packet
}

func resultPacket(messageID int64, application uint8, code int64) *ber.Packet {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, ber.Tag(application), nil, "Result")
	op.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagEnumerated, code, "resultCode"))
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, "", "matchedDN"))
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, "", "diagnosticMessage"))
	return envelope(messageID, op)
}

func entryPacket(messageID int64, entry *ldap.Entry) *ber.Packet {
	op := ber.Encode(ber.ClassApplication, ber.TypeConstructed, ber.Tag(ldap.ApplicationSearchResultEntry), nil, "Search Result Entry")
	op.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, entry.DN, "objectName"))

	attributes := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "attributes")
	for _, attr := range entry.Attributes {
		partial := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "partialAttribute")
		partial.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, attr.Name, "type"))
		values := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSet, nil, "vals")
		for _, v := range attr.Values {
			values.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, v, "value"))
		}
		partial.AppendChild(values)
		attributes.AppendChild(partial)
	}
	op.AppendChild(attributes)
	return envelope(messageID, op)
}
