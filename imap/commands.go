package imap

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"crypto/tls"

	"github.com/pkg/errors"
)

// Functions

// quoteString renders text as a quoted string of the protocol,
// escaping backslash and double quote characters.
func quoteString(text string) string {

	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return "\"" + replacer.Replace(text) + "\""
}

// atoms lowers a parsed value into its flat atom texts. Nested
// lists contribute their elements in order.
func atoms(v Value) []string {

	if !v.IsList {
		return []string{v.Atom}
	}

	var out []string
	for _, elem := range v.List {
		out = append(out, atoms(elem)...)
	}

	return out
}

// parseNumbers interprets every whitespace-separated field of
// the supplied argument strings as a message sequence number.
func parseNumbers(args []string) ([]int, error) {

	var nums []int

	for _, arg := range args {

		for _, field := range strings.Fields(arg) {

			num, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "server sent a non-numeric sequence number %q", field)
			}

			nums = append(nums, num)
		}
	}

	return nums, nil
}

// Capability asks the server for the capabilities it supports
// in the current state.
func (s *Session) Capability() ([]string, error) {

	resp, err := s.Execute("CAPABILITY")
	if err != nil {
		return nil, err
	}

	var caps []string
	for _, arg := range resp["CAPABILITY"] {
		caps = append(caps, strings.Fields(arg)...)
	}

	return caps, nil
}

// Noop sends the protocol no-operation, often used to keep a
// session alive or to poll for new untagged status.
func (s *Session) Noop() (ResponseTable, error) {
	return s.Execute("NOOP")
}

// Login authenticates against the server with a plain user name
// and password. Both arguments are sent as quoted strings.
func (s *Session) Login(user string, password string) error {

	_, err := s.Execute(fmt.Sprintf("LOGIN %s %s", quoteString(user), quoteString(password)))

	return err
}

// Logout ends the session. The connection is terminated and no
// further commands are accepted afterwards.
func (s *Session) Logout() error {

	_, err := s.Execute("LOGOUT")

	return err
}

// StartTLS negotiates an upgrade of the plaintext connection to
// an encrypted channel and performs the upgrade in place once
// the server agreed.
func (s *Session) StartTLS(tlsConfig *tls.Config) error {

	if _, err := s.Execute("STARTTLS"); err != nil {
		return err
	}

	return s.Conn.UpgradeTLS(tlsConfig)
}

// decodeMailboxStatus collects the untagged SELECT/EXAMINE
// answers into one mailbox status value.
func decodeMailboxStatus(mailbox string, resp ResponseTable) (*MailboxStatus, error) {

	status := &MailboxStatus{
		Mailbox: mailbox,
	}

	if args := resp["EXISTS"]; len(args) > 0 {
		num, err := strconv.Atoi(strings.Fields(args[len(args)-1])[0])
		if err != nil {
			return nil, errors.Wrap(err, "server sent a non-numeric EXISTS count")
		}
		status.Exists = num
	}

	if args := resp["RECENT"]; len(args) > 0 {
		num, err := strconv.Atoi(strings.Fields(args[len(args)-1])[0])
		if err != nil {
			return nil, errors.Wrap(err, "server sent a non-numeric RECENT count")
		}
		status.Recent = num
	}

	if args := resp["FLAGS"]; len(args) > 0 {

		parsed, err := ParseList(args[len(args)-1])
		if err != nil {
			return nil, err
		}

		status.Flags = atoms(parsed)
	}

	// Status codes such as UNSEEN and UIDVALIDITY arrive inside
	// bracketed sections of untagged OK lines.
	for _, arg := range resp["OK"] {

		if !strings.HasPrefix(arg, "[") {
			continue
		}

		end := strings.IndexByte(arg, ']')
		if end < 0 {
			continue
		}

		fields := strings.Fields(arg[1:end])
		if len(fields) != 2 {
			continue
		}

		num, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}

		switch fields[0] {
		case "UNSEEN":
			status.Unseen = num
		case "UIDVALIDITY":
			status.UIDValidity = num
		case "UIDNEXT":
			status.UIDNext = num
		}
	}

	return status, nil
}

// Select opens the supplied mailbox for reading and writing.
// A previously selected mailbox is implicitly closed, even if
// the command itself fails afterwards.
func (s *Session) Select(mailbox string) (*MailboxStatus, error) {

	resp, err := s.Execute(fmt.Sprintf("SELECT %s", quoteString(mailbox)))
	if err != nil {
		return nil, err
	}

	s.SelectedMailbox = mailbox

	return decodeMailboxStatus(mailbox, resp)
}

// Examine opens the supplied mailbox like Select but read-only.
func (s *Session) Examine(mailbox string) (*MailboxStatus, error) {

	resp, err := s.Execute(fmt.Sprintf("EXAMINE %s", quoteString(mailbox)))
	if err != nil {
		return nil, err
	}

	s.SelectedMailbox = mailbox

	status, err := decodeMailboxStatus(mailbox, resp)
	if err != nil {
		return nil, err
	}

	status.ReadOnly = true

	return status, nil
}

// Create makes a new mailbox with the supplied name.
func (s *Session) Create(mailbox string) error {

	_, err := s.Execute(fmt.Sprintf("CREATE %s", quoteString(mailbox)))

	return err
}

// Delete removes the mailbox with the supplied name.
func (s *Session) Delete(mailbox string) error {

	_, err := s.Execute(fmt.Sprintf("DELETE %s", quoteString(mailbox)))

	return err
}

// Rename changes the name of a mailbox.
func (s *Session) Rename(mailbox string, newName string) error {

	_, err := s.Execute(fmt.Sprintf("RENAME %s %s", quoteString(mailbox), quoteString(newName)))

	return err
}

// Subscribe adds the mailbox to the subscription list.
func (s *Session) Subscribe(mailbox string) error {

	_, err := s.Execute(fmt.Sprintf("SUBSCRIBE %s", quoteString(mailbox)))

	return err
}

// Unsubscribe removes the mailbox from the subscription list.
func (s *Session) Unsubscribe(mailbox string) error {

	_, err := s.Execute(fmt.Sprintf("UNSUBSCRIBE %s", quoteString(mailbox)))

	return err
}

// decodeMailboxInfos parses the argument strings of LIST or
// LSUB answers into mailbox descriptions.
func decodeMailboxInfos(args []string) ([]MailboxInfo, error) {

	var infos []MailboxInfo

	for _, arg := range args {

		// Each entry has the shape `(flags) delimiter name`.
		// Parsing the full entry hands back the flags list
		// alone, since a closing parenthesis that completes
		// the outermost frame ends the parse.
		if !strings.HasPrefix(arg, "(") {
			return nil, errors.Errorf("server sent a malformed mailbox entry %q", arg)
		}

		flagsVal, err := ParseList(arg)
		if err != nil {
			return nil, err
		}

		rest, err := ParseList(arg[strings.IndexByte(arg, ')')+1:])
		if err != nil {
			return nil, err
		}

		if len(rest.List) < 2 {
			return nil, errors.Errorf("server sent a malformed mailbox entry %q", arg)
		}

		infos = append(infos, MailboxInfo{
			Flags:     atoms(flagsVal),
			Delimiter: rest.List[0].Atom,
			Name:      rest.List[1].Atom,
		})
	}

	return infos, nil
}

// List asks for all mailbox names matching the supplied pattern
// under the supplied reference name.
func (s *Session) List(reference string, pattern string) ([]MailboxInfo, error) {

	resp, err := s.Execute(fmt.Sprintf("LIST %s %s", quoteString(reference), quoteString(pattern)))
	if err != nil {
		return nil, err
	}

	return decodeMailboxInfos(resp["LIST"])
}

// Lsub is List restricted to subscribed mailboxes.
func (s *Session) Lsub(reference string, pattern string) ([]MailboxInfo, error) {

	resp, err := s.Execute(fmt.Sprintf("LSUB %s %s", quoteString(reference), quoteString(pattern)))
	if err != nil {
		return nil, err
	}

	return decodeMailboxInfos(resp["LSUB"])
}

// Status queries the supplied status items, e.g. MESSAGES or
// RECENT, of a mailbox without selecting it.
func (s *Session) Status(mailbox string, items []string) (map[string]int, error) {

	list := make([]Value, len(items))
	for i, item := range items {
		list[i] = NewAtom(item)
	}

	resp, err := s.Execute(fmt.Sprintf("STATUS %s %s", quoteString(mailbox), BuildList(NewList(list...))))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)

	for _, arg := range resp["STATUS"] {

		// The item counts are in the trailing parenthesized
		// list: STATUS "name" (MESSAGES 4 RECENT 1).
		open := strings.IndexByte(arg, '(')
		if open < 0 {
			continue
		}

		parsed, err := ParseList(arg[open:])
		if err != nil {
			return nil, err
		}

		pairs := parsed.List
		for i := 0; (i + 1) < len(pairs); i += 2 {

			num, err := strconv.Atoi(pairs[i+1].Atom)
			if err != nil {
				return nil, errors.Wrapf(err, "server sent a non-numeric STATUS count for %s", pairs[i].Atom)
			}

			counts[pairs[i].Atom] = num
		}
	}

	return counts, nil
}

// Append stores a message into the supplied mailbox. The message
// travels as a non-synchronizing literal, so the whole command
// including the payload goes out in one write and no
// continuation round trip is needed.
func (s *Session) Append(mailbox string, flags []string, dateTime time.Time, message string) error {

	cmd := fmt.Sprintf("APPEND %s", quoteString(mailbox))

	if len(flags) > 0 {

		list := make([]Value, len(flags))
		for i, flag := range flags {
			list[i] = NewAtom(flag)
		}

		cmd = fmt.Sprintf("%s %s", cmd, BuildList(NewList(list...)))
	}

	if !dateTime.IsZero() {
		cmd = fmt.Sprintf("%s %s", cmd, quoteString(dateTime.Format("02-Jan-2006 15:04:05 -0700")))
	}

	_, err := s.Execute(fmt.Sprintf("%s {%d+}\r\n%s", cmd, len(message), message))

	return err
}

// Check requests a checkpoint of the selected mailbox.
func (s *Session) Check() error {

	_, err := s.Execute("CHECK")

	return err
}

// Close ends the access to the selected mailbox, expunging
// deleted messages, and returns the session to the
// authenticated state.
func (s *Session) Close() error {

	_, err := s.Execute("CLOSE")

	return err
}

// Expunge permanently removes all messages flagged as deleted
// from the selected mailbox and returns the sequence numbers
// the server reported as gone.
func (s *Session) Expunge() ([]int, error) {

	resp, err := s.Execute("EXPUNGE")
	if err != nil {
		return nil, err
	}

	return parseNumbers(resp["EXPUNGE"])
}

// Search hands the supplied searching criteria to the server
// and returns the matching message sequence numbers.
func (s *Session) Search(criteria string) ([]int, error) {

	resp, err := s.Execute(fmt.Sprintf("SEARCH %s", criteria))
	if err != nil {
		return nil, err
	}

	return parseNumbers(resp["SEARCH"])
}

// decodeFetchItems parses the argument strings of untagged
// FETCH answers, each of the normalized form
// "seq (ATTR value ...)".
func decodeFetchItems(args []string) ([]FetchItem, error) {

	var items []FetchItem

	for _, arg := range args {

		parts := strings.SplitN(arg, " ", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("server sent a malformed FETCH answer %q", arg)
		}

		seq, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.Wrap(err, "server sent a non-numeric FETCH sequence number")
		}

		attrs, err := ParseList(parts[1])
		if err != nil {
			return nil, err
		}

		items = append(items, FetchItem{
			Seq:        seq,
			Attributes: attrs,
		})
	}

	return items, nil
}

// Fetch retrieves the supplied data items, e.g. FLAGS or
// BODY[TEXT], for the messages of a sequence set.
func (s *Session) Fetch(set string, items []string) ([]FetchItem, error) {

	list := make([]Value, len(items))
	for i, item := range items {
		list[i] = NewAtom(item)
	}

	resp, err := s.Execute(fmt.Sprintf("FETCH %s %s", set, BuildList(NewList(list...))))
	if err != nil {
		return nil, err
	}

	return decodeFetchItems(resp["FETCH"])
}

// Store alters flag data of the messages of a sequence set, for
// example "+FLAGS" with a deleted flag. The server answers with
// the resulting per-message data.
func (s *Session) Store(set string, item string, flags []string) ([]FetchItem, error) {

	list := make([]Value, len(flags))
	for i, flag := range flags {
		list[i] = NewAtom(flag)
	}

	resp, err := s.Execute(fmt.Sprintf("STORE %s %s %s", set, item, BuildList(NewList(list...))))
	if err != nil {
		return nil, err
	}

	return decodeFetchItems(resp["FETCH"])
}

// Copy copies the messages of a sequence set to the end of the
// destination mailbox.
func (s *Session) Copy(set string, mailbox string) error {

	_, err := s.Execute(fmt.Sprintf("COPY %s %s", set, quoteString(mailbox)))

	return err
}
