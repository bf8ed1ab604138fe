package client

import (
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/jesrui/go-imap4/imap"
)

type metricsService struct {
	service  Service
	commands metrics.Counter
	failures metrics.Counter
}

// NewMetricsService wraps a provided existing service with the
// provided command and failure counters. Both counters carry a
// "command" label.
func NewMetricsService(s Service, commands metrics.Counter, failures metrics.Counter) Service {
	return &metricsService{
		service:  s,
		commands: commands,
		failures: failures,
	}
}

func (s *metricsService) count(command string, err error) {

	s.commands.With("command", command).Add(1)

	if err != nil {
		s.failures.With("command", command).Add(1)
	}
}

func (s *metricsService) Capability() ([]string, error) {

	caps, err := s.service.Capability()
	s.count("capability", err)

	return caps, err
}

func (s *metricsService) Noop() (imap.ResponseTable, error) {

	resp, err := s.service.Noop()
	s.count("noop", err)

	return resp, err
}

func (s *metricsService) Login(user string, password string) error {

	err := s.service.Login(user, password)
	s.count("login", err)

	return err
}

func (s *metricsService) Logout() error {

	err := s.service.Logout()
	s.count("logout", err)

	return err
}

func (s *metricsService) Select(mailbox string) (*imap.MailboxStatus, error) {

	status, err := s.service.Select(mailbox)
	s.count("select", err)

	return status, err
}

func (s *metricsService) Examine(mailbox string) (*imap.MailboxStatus, error) {

	status, err := s.service.Examine(mailbox)
	s.count("examine", err)

	return status, err
}

func (s *metricsService) Create(mailbox string) error {

	err := s.service.Create(mailbox)
	s.count("create", err)

	return err
}

func (s *metricsService) Delete(mailbox string) error {

	err := s.service.Delete(mailbox)
	s.count("delete", err)

	return err
}

func (s *metricsService) Rename(mailbox string, newName string) error {

	err := s.service.Rename(mailbox, newName)
	s.count("rename", err)

	return err
}

func (s *metricsService) List(reference string, pattern string) ([]imap.MailboxInfo, error) {

	infos, err := s.service.List(reference, pattern)
	s.count("list", err)

	return infos, err
}

func (s *metricsService) Status(mailbox string, items []string) (map[string]int, error) {

	counts, err := s.service.Status(mailbox, items)
	s.count("status", err)

	return counts, err
}

func (s *metricsService) Append(mailbox string, flags []string, dateTime time.Time, message string) error {

	err := s.service.Append(mailbox, flags, dateTime, message)
	s.count("append", err)

	return err
}

func (s *metricsService) Fetch(set string, items []string) ([]imap.FetchItem, error) {

	fetched, err := s.service.Fetch(set, items)
	s.count("fetch", err)

	return fetched, err
}

func (s *metricsService) Store(set string, item string, flags []string) ([]imap.FetchItem, error) {

	stored, err := s.service.Store(set, item, flags)
	s.count("store", err)

	return stored, err
}

func (s *metricsService) Search(criteria string) ([]int, error) {

	nums, err := s.service.Search(criteria)
	s.count("search", err)

	return nums, err
}

func (s *metricsService) Copy(set string, mailbox string) error {

	err := s.service.Copy(set, mailbox)
	s.count("copy", err)

	return err
}

func (s *metricsService) Expunge() ([]int, error) {

	nums, err := s.service.Expunge()
	s.count("expunge", err)

	return nums, err
}

func (s *metricsService) Close() error {

	err := s.service.Close()
	s.count("close", err)

	return err
}

func (s *metricsService) State() imap.State {
	return s.service.State()
}
