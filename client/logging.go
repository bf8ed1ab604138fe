package client

import (
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/jesrui/go-imap4/imap"
)

type loggingService struct {
	logger  log.Logger
	service Service
}

// NewLoggingService wraps a provided existing
// service with the provided logger.
func NewLoggingService(s Service, logger log.Logger) Service {
	return &loggingService{logger, s}
}

// log emits one line per finished operation: debug when it went
// through, info with the error when it did not.
func (s *loggingService) log(method string, err error, keyvals ...interface{}) {

	logger := log.With(s.logger, "method", method)
	logger = log.With(logger, keyvals...)

	if err != nil {
		level.Info(logger).Log(
			"msg", "failed to perform operation",
			"err", err,
		)
		return
	}

	level.Debug(logger).Log("msg", "operation done")
}

func (s *loggingService) Capability() ([]string, error) {

	caps, err := s.service.Capability()
	s.log("CAPABILITY", err)

	return caps, err
}

func (s *loggingService) Noop() (imap.ResponseTable, error) {

	resp, err := s.service.Noop()
	s.log("NOOP", err)

	return resp, err
}

func (s *loggingService) Login(user string, password string) error {

	// The password never reaches the log.
	err := s.service.Login(user, password)
	s.log("LOGIN", err, "user", user)

	return err
}

func (s *loggingService) Logout() error {

	err := s.service.Logout()
	s.log("LOGOUT", err)

	return err
}

func (s *loggingService) Select(mailbox string) (*imap.MailboxStatus, error) {

	status, err := s.service.Select(mailbox)
	s.log("SELECT", err, "mailbox", mailbox)

	return status, err
}

func (s *loggingService) Examine(mailbox string) (*imap.MailboxStatus, error) {

	status, err := s.service.Examine(mailbox)
	s.log("EXAMINE", err, "mailbox", mailbox)

	return status, err
}

func (s *loggingService) Create(mailbox string) error {

	err := s.service.Create(mailbox)
	s.log("CREATE", err, "mailbox", mailbox)

	return err
}

func (s *loggingService) Delete(mailbox string) error {

	err := s.service.Delete(mailbox)
	s.log("DELETE", err, "mailbox", mailbox)

	return err
}

func (s *loggingService) Rename(mailbox string, newName string) error {

	err := s.service.Rename(mailbox, newName)
	s.log("RENAME", err, "mailbox", mailbox, "newName", newName)

	return err
}

func (s *loggingService) List(reference string, pattern string) ([]imap.MailboxInfo, error) {

	infos, err := s.service.List(reference, pattern)
	s.log("LIST", err, "reference", reference, "pattern", pattern)

	return infos, err
}

func (s *loggingService) Status(mailbox string, items []string) (map[string]int, error) {

	counts, err := s.service.Status(mailbox, items)
	s.log("STATUS", err, "mailbox", mailbox)

	return counts, err
}

func (s *loggingService) Append(mailbox string, flags []string, dateTime time.Time, message string) error {

	err := s.service.Append(mailbox, flags, dateTime, message)
	s.log("APPEND", err, "mailbox", mailbox, "size", len(message))

	return err
}

func (s *loggingService) Fetch(set string, items []string) ([]imap.FetchItem, error) {

	fetched, err := s.service.Fetch(set, items)
	s.log("FETCH", err, "set", set)

	return fetched, err
}

func (s *loggingService) Store(set string, item string, flags []string) ([]imap.FetchItem, error) {

	stored, err := s.service.Store(set, item, flags)
	s.log("STORE", err, "set", set, "item", item)

	return stored, err
}

func (s *loggingService) Search(criteria string) ([]int, error) {

	nums, err := s.service.Search(criteria)
	s.log("SEARCH", err, "criteria", criteria)

	return nums, err
}

func (s *loggingService) Copy(set string, mailbox string) error {

	err := s.service.Copy(set, mailbox)
	s.log("COPY", err, "set", set, "mailbox", mailbox)

	return err
}

func (s *loggingService) Expunge() ([]int, error) {

	nums, err := s.service.Expunge()
	s.log("EXPUNGE", err)

	return nums, err
}

func (s *loggingService) Close() error {

	err := s.service.Close()
	s.log("CLOSE", err)

	return err
}

func (s *loggingService) State() imap.State {
	return s.service.State()
}
