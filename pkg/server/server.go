package server

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/sharknado-db/sharknado/pkg/events"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/store"
	"github.com/sharknado-db/sharknado/pkg/users"
)

// DefaultListenAddr is the default TCP listen address
const DefaultListenAddr = ":8080"

// Server accepts TCP connections and runs one session per connection.
// The acceptor itself holds no per-connection state; the engine and
// user directory handles are shared by every session.
type Server struct {
	engine     *store.Engine
	users      *users.Directory
	broker     *events.Broker
	listenAddr string

	mu       sync.Mutex
	listener net.Listener
	running  bool
	wg       sync.WaitGroup
}

// Config holds server configuration
type Config struct {
	ListenAddr string // Address to listen on (default: ":8080")
}

// NewServer creates a new TCP server. The broker is optional.
func NewServer(engine *store.Engine, directory *users.Directory, broker *events.Broker, config *Config) *Server {
	addr := DefaultListenAddr
	if config != nil && config.ListenAddr != "" {
		addr = config.ListenAddr
	}

	return &Server{
		engine:     engine,
		users:      directory,
		broker:     broker,
		listenAddr: addr,
	}
}

// Start binds the listener and begins accepting connections. It
// returns once the listener is bound; sessions run on their own
// goroutines until Stop or ctx cancellation.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("server already running")
	}

	listener, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to bind %s: %w", s.listenAddr, err)
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	log.Logger.Info().
		Str("component", "server").
		Str("address", listener.Addr().String()).
		Msg("listening for connections")

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	go s.acceptLoop()

	return nil
}

// Stop closes the listener and waits for in-flight sessions to end
func (s *Server) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		_ = listener.Close()
	}
	s.wg.Wait()

	log.Logger.Info().
		Str("component", "server").
		Msg("server stopped")

	return nil
}

// Addr returns the bound listener address (useful when listening on
// port 0)
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// IsRunning returns true if the server is accepting connections
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) acceptLoop() {
	// Live connections; once Stop closes the listener they are closed
	// too, so sessions blocked in a read end and Stop's wait returns
	var connsMu sync.Mutex
	conns := make(map[net.Conn]struct{})
	defer func() {
		connsMu.Lock()
		defer connsMu.Unlock()
		for conn := range conns {
			_ = conn.Close()
		}
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.IsRunning() {
				log.Logger.Error().
					Err(err).
					Str("component", "server").
					Msg("accept failed")
				continue
			}
			return
		}

		sess := newSession(conn, s.engine, s.users, s.broker)
		connsMu.Lock()
		conns[conn] = struct{}{}
		connsMu.Unlock()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			sess.run()
			connsMu.Lock()
			delete(conns, conn)
			connsMu.Unlock()
		}()
	}
}
