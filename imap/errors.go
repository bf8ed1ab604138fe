package imap

import (
	"fmt"

	"github.com/pkg/errors"
)

// Variables

// Grammar errors returned by ParseList. They are fatal to the
// parse call they occurred in but not to the connection.
var (
	ErrUnexpectedEnd         = errors.New("unexpected end of response text")
	ErrUnmatchedBracket      = errors.New("bracketed section is never closed")
	ErrUnterminatedString    = errors.New("quoted string is never terminated")
	ErrInvalidLiteralPrelude = errors.New("literal prelude is not a non-negative number")
	ErrInvalidLiteral        = errors.New("literal is missing its CRLF or is shorter than announced")
)

// Transport errors. Any of them is fatal to the connection and
// requires the caller to discard the session and reconnect.
var (
	ErrConnectionClosed   = errors.New("connection closed by server")
	ErrTimeout            = errors.New("connection timed out")
	ErrBrokenConnection   = errors.New("connection did not accept all bytes")
	ErrUnsupportedCommand = errors.New("command is not part of the supported command set")
)

// Structs

// CommandError reports a command the server refused with a NO
// or BAD completion line. The connection remains usable and no
// partial response data is handed to the caller.
type CommandError struct {
	Status  string
	Message string
}

// IllegalStateError reports a command that is not legal in the
// session state it was issued in. It is raised before any byte
// reaches the network.
type IllegalStateError struct {
	Command string
	State   State
}

// Functions

func (e *CommandError) Error() string {
	return fmt.Sprintf("server answered %s: %s", e.Status, e.Message)
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("command %s is not legal in state %s", e.Command, e.State)
}

// IsMalformedResponse reports whether the supplied error stems
// from a violation of the response grammar.
func IsMalformedResponse(err error) bool {

	switch errors.Cause(err) {
	case ErrUnexpectedEnd, ErrUnmatchedBracket, ErrUnterminatedString,
		ErrInvalidLiteralPrelude, ErrInvalidLiteral:
		return true
	}

	return false
}
