// Package server exposes a session over JSON-RPC 2.0 on a byte stream,
// framed with Content-Length headers the way language servers are.
package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/malphas-lang/ski/internal/engine"
)

// Server answers requests against one session, one request at a time.
type Server struct {
	reader  *bufio.Reader
	writer  io.Writer
	mu      sync.Mutex
	session *engine.Session
	logger  *log.Logger

	shutdown bool
}

// NewServer creates a server reading requests from r and writing replies
// to w.
func NewServer(r io.Reader, w io.Writer, session *engine.Session) *Server {
	return &Server{
		reader:  bufio.NewReader(r),
		writer:  w,
		session: session,
	}
}

// SetLogger mirrors every window/logMessage notification to l.
func (s *Server) SetLogger(l *log.Logger) { s.logger = l }

// Serve handles messages until the input ends or an exit notification
// arrives. A clean end of input is not an error.
func (s *Server) Serve() error {
	for {
		msg, err := ReadMessage(s.reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			var rpcErr *RPCError
			if errors.As(err, &rpcErr) {
				s.replyError(nil, rpcErr)
				continue
			}
			return err
		}

		if done := s.HandleMessage(msg); done {
			return nil
		}
	}
}

func (s *Server) write(msg *RPCMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := WriteMessage(s.writer, msg); err != nil && s.logger != nil {
		s.logger.Printf("write failed: %v", err)
	}
}

func (s *Server) logf(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if s.logger != nil {
		s.logger.Print(message)
	}
	s.notify("window/logMessage", map[string]any{
		"type":    4, // Log
		"message": message,
	})
}
