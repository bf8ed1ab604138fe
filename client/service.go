package client

import (
	"time"

	"github.com/jesrui/go-imap4/imap"
)

// Structs

type service struct {
	session *imap.Session
}

// Interfaces

// Service defines the mail-access operations a connected and
// state-tracked session provides to callers. It mirrors the
// command surface of the protocol engine so that logging and
// metrics middleware can wrap every operation uniformly.
type Service interface {

	// Capability asks the server which commands and
	// extensions it supports in the current state.
	Capability() ([]string, error)

	// Noop keeps the session alive and polls for
	// untagged status data.
	Noop() (imap.ResponseTable, error)

	// Login authenticates with a plain user name and
	// password.
	Login(user string, password string) error

	// Logout ends the session and terminates the
	// connection.
	Logout() error

	// Select opens a mailbox for reading and writing.
	Select(mailbox string) (*imap.MailboxStatus, error)

	// Examine opens a mailbox read-only.
	Examine(mailbox string) (*imap.MailboxStatus, error)

	// Create makes a new mailbox.
	Create(mailbox string) error

	// Delete removes a mailbox.
	Delete(mailbox string) error

	// Rename changes the name of a mailbox.
	Rename(mailbox string, newName string) error

	// List enumerates mailboxes matching a pattern.
	List(reference string, pattern string) ([]imap.MailboxInfo, error)

	// Status queries counts of a mailbox without
	// selecting it.
	Status(mailbox string, items []string) (map[string]int, error)

	// Append stores a message into a mailbox.
	Append(mailbox string, flags []string, dateTime time.Time, message string) error

	// Fetch retrieves data items for a sequence set of
	// messages in the selected mailbox.
	Fetch(set string, items []string) ([]imap.FetchItem, error)

	// Store alters flag data for a sequence set.
	Store(set string, item string, flags []string) ([]imap.FetchItem, error)

	// Search returns the sequence numbers matching the
	// supplied criteria.
	Search(criteria string) ([]int, error)

	// Copy copies a sequence set into another mailbox.
	Copy(set string, mailbox string) error

	// Expunge removes deleted messages from the selected
	// mailbox.
	Expunge() ([]int, error)

	// Close ends access to the selected mailbox.
	Close() error

	// State exposes the session state the connection
	// currently is in.
	State() imap.State
}

// Functions

// NewService wraps a protocol session into the Service
// interface defined above.
func NewService(session *imap.Session) Service {
	return &service{session: session}
}

func (s *service) Capability() ([]string, error) {
	return s.session.Capability()
}

func (s *service) Noop() (imap.ResponseTable, error) {
	return s.session.Noop()
}

func (s *service) Login(user string, password string) error {
	return s.session.Login(user, password)
}

func (s *service) Logout() error {
	return s.session.Logout()
}

func (s *service) Select(mailbox string) (*imap.MailboxStatus, error) {
	return s.session.Select(mailbox)
}

func (s *service) Examine(mailbox string) (*imap.MailboxStatus, error) {
	return s.session.Examine(mailbox)
}

func (s *service) Create(mailbox string) error {
	return s.session.Create(mailbox)
}

func (s *service) Delete(mailbox string) error {
	return s.session.Delete(mailbox)
}

func (s *service) Rename(mailbox string, newName string) error {
	return s.session.Rename(mailbox, newName)
}

func (s *service) List(reference string, pattern string) ([]imap.MailboxInfo, error) {
	return s.session.List(reference, pattern)
}

func (s *service) Status(mailbox string, items []string) (map[string]int, error) {
	return s.session.Status(mailbox, items)
}

func (s *service) Append(mailbox string, flags []string, dateTime time.Time, message string) error {
	return s.session.Append(mailbox, flags, dateTime, message)
}

func (s *service) Fetch(set string, items []string) ([]imap.FetchItem, error) {
	return s.session.Fetch(set, items)
}

func (s *service) Store(set string, item string, flags []string) ([]imap.FetchItem, error) {
	return s.session.Store(set, item, flags)
}

func (s *service) Search(criteria string) ([]int, error) {
	return s.session.Search(criteria)
}

func (s *service) Copy(set string, mailbox string) error {
	return s.session.Copy(set, mailbox)
}

func (s *service) Expunge() ([]int, error) {
	return s.session.Expunge()
}

func (s *service) Close() error {
	return s.session.Close()
}

func (s *service) State() imap.State {
	return s.session.State
}
