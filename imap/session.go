package imap

import (
	"fmt"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/satori/go.uuid"
)

// Constants

// Integer counter for IMAP session states.
const (
	StateNotAuthenticated State = iota
	StateAuthenticated
	StateMailbox
	StateLogout
)

// Variables

// commandStates lists for every supported command the session
// states it may be issued in. The check runs before any byte
// reaches the network.
var commandStates = map[string][]State{
	"CAPABILITY":   {StateNotAuthenticated, StateAuthenticated, StateMailbox},
	"NOOP":         {StateNotAuthenticated, StateAuthenticated, StateMailbox},
	"LOGOUT":       {StateNotAuthenticated, StateAuthenticated, StateMailbox},
	"STARTTLS":     {StateNotAuthenticated},
	"AUTHENTICATE": {StateNotAuthenticated},
	"LOGIN":        {StateNotAuthenticated},
	"SELECT":       {StateAuthenticated, StateMailbox},
	"EXAMINE":      {StateAuthenticated, StateMailbox},
	"CREATE":       {StateAuthenticated, StateMailbox},
	"DELETE":       {StateAuthenticated, StateMailbox},
	"RENAME":       {StateAuthenticated, StateMailbox},
	"SUBSCRIBE":    {StateAuthenticated, StateMailbox},
	"UNSUBSCRIBE":  {StateAuthenticated, StateMailbox},
	"LIST":         {StateAuthenticated, StateMailbox},
	"LSUB":         {StateAuthenticated, StateMailbox},
	"STATUS":       {StateAuthenticated, StateMailbox},
	"APPEND":       {StateAuthenticated, StateMailbox},
	"CHECK":        {StateMailbox},
	"CLOSE":        {StateMailbox},
	"EXPUNGE":      {StateMailbox},
	"SEARCH":       {StateMailbox},
	"FETCH":        {StateMailbox},
	"STORE":        {StateMailbox},
	"COPY":         {StateMailbox},
	"UID":          {StateMailbox},
}

// Structs

// State represents the integer value associated with one of the
// implemented IMAP states a session can be in.
type State int

// Session contains all elements needed for tracking and
// performing the actual IMAP operations against the connected
// server. All methods are to be called from one goroutine:
// there is exactly one outstanding command at a time.
type Session struct {
	logger          log.Logger
	Conn            *Connection
	State           State
	SelectedMailbox string
	tagPrefix       string
	tagSeq          uint32
}

// Functions

func (s State) String() string {

	switch s {
	case StateNotAuthenticated:
		return "not authenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateMailbox:
		return "mailbox"
	case StateLogout:
		return "logout"
	}

	return fmt.Sprintf("unknown state %d", int(s))
}

// NewSession creates a session in not-authenticated state on
// top of a supplied, established connection. The tag prefix is
// derived from a fresh UUID so that tags stay unique for the
// lifetime of the connection and beyond.
func NewSession(c *Connection, logger log.Logger) *Session {

	prefix := strings.SplitN(uuid.NewV4().String(), "-", 2)[0]

	return &Session{
		logger:    logger,
		Conn:      c,
		State:     StateNotAuthenticated,
		tagPrefix: prefix,
	}
}

// NextTag hands out the correlation tag for the next command.
// Tags are never reused within one session.
func (s *Session) NextTag() string {

	s.tagSeq++

	return fmt.Sprintf("%s%04d", s.tagPrefix, s.tagSeq)
}

// Greeting consumes the first line the server sends after the
// connection was established and checks that it announces a
// usable service.
func (s *Session) Greeting() (string, error) {

	line, err := s.Conn.Receive()
	if err != nil {
		return "", err
	}

	if !strings.HasPrefix(line, "* OK") && !strings.HasPrefix(line, "* PREAUTH") {
		return "", &CommandError{
			Status:  "BYE",
			Message: strings.TrimPrefix(line, "* "),
		}
	}

	return line, nil
}

// SendCommand implements the tagged dispatch protocol: it sends
// the supplied command under a fresh tag, accumulates untagged
// response lines until the matching tagged completion line
// arrives and classifies the completion. On OK the accumulated
// lines are handed to TransformResponse, on NO or BAD a
// CommandError carrying the server's message is returned and no
// partial table is produced.
//
// SendCommand performs no state checking, that is the job of
// Execute. It is not re-entrant for a second command until the
// first one completed or failed.
func (s *Session) SendCommand(command string) (ResponseTable, error) {

	tag := s.NextTag()

	if err := s.Conn.Send(fmt.Sprintf("%s %s", tag, command)); err != nil {
		return nil, err
	}

	level.Debug(s.logger).Log(
		"msg", "dispatched command to server",
		"tag", tag,
	)

	var lines []string
	donePrefix := tag + " "

	for {

		line, err := s.Conn.Receive()
		if err != nil {
			return nil, err
		}

		if strings.HasPrefix(line, donePrefix) {

			rest := strings.TrimPrefix(line, donePrefix)
			parts := strings.SplitN(rest, " ", 2)

			msg := ""
			if len(parts) > 1 {
				msg = parts[1]
			}

			switch parts[0] {

			case "OK":
				return TransformResponse(lines), nil

			case "NO", "BAD":
				return nil, &CommandError{
					Status:  parts[0],
					Message: msg,
				}
			}
		}

		// Anything else, including completion lines of foreign
		// tags, is raw response input for the eventual transform.
		lines = append(lines, line)
	}
}

// Execute runs one command through the session state machine:
// it validates the command name against the legality table,
// dispatches via SendCommand and performs the state transition
// the command implies.
//
// Opening a new mailbox implicitly closes the currently selected
// one. The drop to authenticated state happens before dispatch,
// so a failing SELECT or EXAMINE leaves no mailbox open. After
// LOGOUT the connection is torn down no matter what the server
// answered and the session accepts no further commands.
func (s *Session) Execute(command string) (ResponseTable, error) {

	name := strings.ToUpper(strings.SplitN(command, " ", 2)[0])

	states, supported := commandStates[name]
	if !supported {
		return nil, ErrUnsupportedCommand
	}

	legal := false
	for _, state := range states {
		if s.State == state {
			legal = true
			break
		}
	}

	if !legal {
		return nil, &IllegalStateError{
			Command: name,
			State:   s.State,
		}
	}

	if (name == "SELECT") || (name == "EXAMINE") {
		if s.State == StateMailbox {
			s.State = StateAuthenticated
			s.SelectedMailbox = ""
		}
	}

	resp, err := s.SendCommand(command)

	if name == "LOGOUT" {

		s.State = StateLogout

		if termErr := s.Conn.Terminate(); termErr != nil {
			level.Warn(s.logger).Log(
				"msg", "failed to terminate connection after logout",
				"err", termErr,
			)
		}
	}

	if err != nil {
		return nil, err
	}

	switch name {

	case "LOGIN":
		s.State = StateAuthenticated

	case "SELECT", "EXAMINE":
		s.State = StateMailbox

	case "CLOSE":
		s.State = StateAuthenticated
		s.SelectedMailbox = ""
	}

	return resp, nil
}
