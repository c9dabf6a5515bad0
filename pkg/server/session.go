package server

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sharknado-db/sharknado/pkg/document"
	"github.com/sharknado-db/sharknado/pkg/events"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/metrics"
	"github.com/sharknado-db/sharknado/pkg/protocol"
	"github.com/sharknado-db/sharknado/pkg/query"
	"github.com/sharknado-db/sharknado/pkg/store"
	"github.com/sharknado-db/sharknado/pkg/types"
	"github.com/sharknado-db/sharknado/pkg/users"
)

// Fixed response strings mandated by the protocol
const (
	msgAuthRequired       = "Authentication required"
	msgInvalidCredentials = "Invalid credentials"
)

// session is the per-connection state machine. It starts
// unauthenticated; only LOGIN is accepted until a successful
// authentication, and every command produces exactly one response
// line.
type session struct {
	id     string
	conn   net.Conn
	engine *store.Engine
	users  *users.Directory
	broker *events.Broker
	logger zerolog.Logger

	authenticated bool
	username      string
	role          types.Role
}

func newSession(conn net.Conn, engine *store.Engine, directory *users.Directory, broker *events.Broker) *session {
	id := uuid.New().String()
	return &session{
		id:     id,
		conn:   conn,
		engine: engine,
		users:  directory,
		broker: broker,
		logger: log.WithSessionID(id),
	}
}

// run processes request lines until the client disconnects, the
// server closes the connection on Stop, or a socket write fails. Mutations already appended to the log stay
// durable; there is nothing to roll back on disconnect.
func (s *session) run() {
	defer s.conn.Close()

	s.logger.Debug().
		Str("remote", s.conn.RemoteAddr().String()).
		Msg("session opened")
	metrics.SessionsTotal.Inc()
	metrics.SessionsActive.Inc()
	defer metrics.SessionsActive.Dec()
	s.publish(events.EventSessionOpened)
	defer s.publish(events.EventSessionClosed)

	scanner := bufio.NewScanner(s.conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		response := s.handleLine(scanner.Text())
		if _, err := s.conn.Write([]byte(response)); err != nil {
			s.logger.Warn().Err(err).Msg("socket write failed, closing session")
			return
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Debug().Err(err).Msg("session read ended")
	}
	s.logger.Debug().Msg("session closed")
}

// handleLine parses and dispatches one request line, returning the
// framed response
func (s *session) handleLine(line string) string {
	timer := metrics.NewTimer()

	cmd, err := protocol.Parse(line)
	if err != nil {
		metrics.CommandsTotal.WithLabelValues("parse", "error").Inc()
		if !s.authenticated {
			return protocol.Error(msgAuthRequired)
		}
		return protocol.Error(errorMessage(err))
	}

	verb := string(cmd.Verb)
	defer timer.ObserveDurationVec(metrics.CommandDuration, verb)

	response := s.dispatch(cmd)
	status := "ok"
	if strings.HasPrefix(response, string(protocol.StatusError)) {
		status = "error"
	}
	metrics.CommandsTotal.WithLabelValues(verb, status).Inc()
	return response
}

func (s *session) dispatch(cmd protocol.Command) string {
	// LOGIN is the only verb accepted in both states; it
	// re-authenticates an already-authenticated session
	if cmd.Verb == protocol.VerbLogin {
		return s.handleLogin(cmd)
	}

	if !s.authenticated {
		return protocol.Error(msgAuthRequired)
	}

	switch cmd.Verb {
	case protocol.VerbLogout:
		return s.handleLogout()
	case protocol.VerbSet:
		return s.handleSet(cmd)
	case protocol.VerbGet:
		return s.handleGet(cmd)
	case protocol.VerbUpdate:
		return s.handleUpdate(cmd)
	case protocol.VerbDelete:
		return s.handleDelete(cmd)
	case protocol.VerbQuery:
		return s.handleQuery(cmd)
	}

	return protocol.Error(fmt.Sprintf("UnknownCommand: %s", cmd.Verb))
}

func (s *session) handleLogin(cmd protocol.Command) string {
	role, err := s.users.Authenticate(cmd.User, cmd.Pass)
	if err != nil {
		metrics.AuthFailuresTotal.Inc()
		s.logger.Debug().Str("user", cmd.User).Msg("login rejected")
		return protocol.Error(msgInvalidCredentials)
	}

	// On success a repeated LOGIN replaces the session identity
	s.authenticated = true
	s.username = cmd.User
	s.role = role

	s.logger.Info().
		Str("user", cmd.User).
		Str("role", string(role)).
		Msg("login")
	return protocol.OK(fmt.Sprintf("Logged in as %s", cmd.User))
}

func (s *session) handleLogout() string {
	s.logger.Info().Str("user", s.username).Msg("logout")
	s.authenticated = false
	s.username = ""
	s.role = ""
	return protocol.OK("Logged out")
}

func (s *session) handleSet(cmd protocol.Command) string {
	if err := s.engine.Set(cmd.Table, cmd.Key, cmd.Doc); err != nil {
		return protocol.Error(errorMessage(err))
	}
	return protocol.OK(fmt.Sprintf("Stored %s/%s", cmd.Table, cmd.Key))
}

func (s *session) handleGet(cmd protocol.Command) string {
	doc, err := s.engine.Get(cmd.Table, cmd.Key)
	if err != nil {
		return protocol.Error(errorMessage(err))
	}
	payload, err := document.Encode(doc)
	if err != nil {
		return protocol.Error(errorMessage(err))
	}
	return protocol.Result(payload)
}

func (s *session) handleUpdate(cmd protocol.Command) string {
	if err := s.engine.Update(cmd.Table, cmd.Key, cmd.Doc); err != nil {
		return protocol.Error(errorMessage(err))
	}
	return protocol.OK(fmt.Sprintf("Updated %s/%s", cmd.Table, cmd.Key))
}

func (s *session) handleDelete(cmd protocol.Command) string {
	if err := s.engine.Delete(cmd.Table, cmd.Key); err != nil {
		return protocol.Error(errorMessage(err))
	}
	return protocol.OK(fmt.Sprintf("Deleted %s/%s", cmd.Table, cmd.Key))
}

func (s *session) handleQuery(cmd protocol.Command) string {
	conds, err := query.Parse(cmd.Query)
	if err != nil {
		return protocol.Error(errorMessage(err))
	}

	entries, err := s.engine.Query(cmd.Table, conds)
	if err != nil {
		return protocol.Error(errorMessage(err))
	}

	// The wire format is a single JSON array of matching documents
	docs := make([]any, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, entry.Doc)
	}
	payload, err := document.Encode(docs)
	if err != nil {
		return protocol.Error(errorMessage(err))
	}
	return protocol.Result(payload)
}

func (s *session) publish(typ events.EventType) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(&events.Event{
		Type:     typ,
		Metadata: map[string]string{"session_id": s.id},
	})
}

// errorMessage maps internal errors onto the wire error taxonomy
func errorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return "NotFound"
	case errors.Is(err, query.ErrMalformed):
		return fmt.Sprintf("MalformedQuery: %v", err)
	case errors.Is(err, protocol.ErrBadJSON):
		return fmt.Sprintf("BadJSON: %v", err)
	case errors.Is(err, protocol.ErrBadArguments):
		return fmt.Sprintf("BadArguments: %v", err)
	case errors.Is(err, protocol.ErrUnknownCommand):
		return fmt.Sprintf("UnknownCommand: %v", err)
	case errors.Is(err, store.ErrInvalidTable), errors.Is(err, store.ErrInvalidKey):
		return fmt.Sprintf("BadArguments: %v", err)
	}
	return fmt.Sprintf("IOFailure: %v", err)
}
