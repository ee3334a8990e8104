package smtp

import (
	"bytes"
	"encoding/base64"
	"net"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeServer is a minimal plaintext ESMTP server: AUTH PLAIN, MAIL, RCPT,
// DATA, RSET, QUIT.
type fakeServer struct {
	listener net.Listener
	username string
	password string
	reject   map[string]bool

	mu       sync.Mutex
	messages []fakeMessage
	resets   int
	quits    int
}

type fakeMessage struct {
	from  string
	rcpts []string
	data  []byte
}

func newFakeServer(t *testing.T, username, password string, reject ...string) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{listener: ln, username: username, password: password, reject: map[string]bool{}}
	for _, r := range reject {
		s.reject[r] = true
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go s.serve(conn)
		}
	}()
	return s
}

func (s *fakeServer) config() Config {
	addr := s.listener.Addr().(*net.TCPAddr)
	return Config{
		Host:     "127.0.0.1",
		Port:     addr.Port,
		Username: s.username,
		Password: s.password,
		Security: SecurityNone,
	}
}

func (s *fakeServer) serve(conn net.Conn) {
	defer conn.Close()
	tp := textproto.NewConn(conn)
	reply := func(format string, args ...any) { _ = tp.PrintfLine(format, args...) }

	var current fakeMessage
	reply("220 fake.local ESMTP ready")
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		verb, arg, _ := strings.Cut(line, " ")

		switch strings.ToUpper(verb) {
		case "EHLO":
			reply("250-fake.local")
			reply("250 AUTH PLAIN")
		case "HELO":
			reply("250 fake.local")
		case "AUTH":
			_, encoded, _ := strings.Cut(arg, " ")
			raw, _ := base64.StdEncoding.DecodeString(encoded)
			fields := bytes.Split(raw, []byte{0})
			if len(fields) == 3 && string(fields[1]) == s.username && string(fields[2]) == s.password {
				reply("235 2.7.0 Authentication successful")
			} else {
				reply("535 5.7.8 Authentication credentials invalid")
			}
		case "MAIL":
			current = fakeMessage{from: angleAddr(arg)}
			reply("250 2.1.0 OK")
		case "RCPT":
			rcpt := angleAddr(arg)
			if s.reject[rcpt] {
				reply("550 5.1.1 No such user")
				continue
			}
			current.rcpts = append(current.rcpts, rcpt)
			reply("250 2.1.5 OK")
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			data, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			current.data = data
			s.mu.Lock()
			s.messages = append(s.messages, current)
			s.mu.Unlock()
			current = fakeMessage{}
			reply("250 2.0.0 queued")
		case "RSET":
			current = fakeMessage{}
			s.mu.Lock()
			s.resets++
			s.mu.Unlock()
			reply("250 2.0.0 OK")
		case "NOOP":
			reply("250 2.0.0 OK")
		case "QUIT":
			s.mu.Lock()
			s.quits++
			s.mu.Unlock()
			reply("221 2.0.0 Bye")
			return
		default:
			reply("502 5.5.2 Command not recognized")
		}
	}
}

func (s *fakeServer) snapshot() (messages []fakeMessage, resets, quits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fakeMessage(nil), s.messages...), s.resets, s.quits
}

func angleAddr(arg string) string {
	start := strings.IndexByte(arg, '<')
	end := strings.IndexByte(arg, '>')
	if start < 0 || end < start {
		return ""
	}
	return arg[start+1 : end]
}
