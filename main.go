package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"crypto/tls"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/jesrui/go-imap4/client"
	"github.com/jesrui/go-imap4/config"
	"github.com/jesrui/go-imap4/crypto"
	"github.com/jesrui/go-imap4/imap"
)

// Functions

// initLogger initializes a JSON gokit-logger set
// to the according log level supplied via cli flag.
func initLogger(loglevel string) log.Logger {

	logger := log.NewJSONLogger(log.NewSyncWriter(os.Stdout))
	logger = log.With(logger,
		"ts", log.DefaultTimestampUTC,
		"caller", log.DefaultCaller,
	)

	switch strings.ToLower(loglevel) {
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	default:
		logger = level.NewFilter(logger, level.AllowDebug())
	}

	return logger
}

// connect establishes the byte stream to the configured server,
// implicitly encrypted if the config says so, and consumes the
// server greeting.
func connect(conf *config.Config, logger log.Logger) (*imap.Session, error) {

	var err error
	var tlsConfig *tls.Config

	host, _, err := net.SplitHostPort(conf.Server.Addr)
	if err != nil {
		return nil, err
	}

	if conf.Server.UseTLS || conf.Server.StartTLS {

		tlsConfig, err = crypto.NewClientTLSConfig(host, conf.Server.RootCertLoc, conf.Server.InsecureSkipVerify)
		if err != nil {
			return nil, err
		}
	}

	var conn net.Conn
	if conf.Server.UseTLS {
		conn, err = tls.Dial("tcp", conf.Server.Addr, tlsConfig)
	} else {
		conn, err = net.Dial("tcp", conf.Server.Addr)
	}
	if err != nil {
		return nil, err
	}

	c := imap.NewConnection(conn, time.Duration(conf.Client.ReadTimeoutMS)*time.Millisecond)
	session := imap.NewSession(c, logger)

	greeting, err := session.Greeting()
	if err != nil {
		return nil, err
	}

	level.Debug(logger).Log(
		"msg", "received server greeting",
		"greeting", greeting,
	)

	if conf.Server.StartTLS {
		if err := session.StartTLS(tlsConfig); err != nil {
			return nil, err
		}
	}

	return session, nil
}

func main() {

	// Parse command-line flag that defines a config path.
	configFlag := flag.String("config", "config.toml", "Provide path to configuration file in TOML syntax.")
	mailboxFlag := flag.String("mailbox", "INBOX", "Name of the mailbox to summarize.")
	messagesFlag := flag.Int("messages", 5, "Number of most recent messages to inspect.")
	loglevelFlag := flag.String("loglevel", "debug", "This flag sets the default logging level.")
	flag.Parse()

	logger := initLogger(*loglevelFlag)

	// Read configuration from file.
	conf, err := config.LoadConfig(*configFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the config",
			"err", err,
		)
		os.Exit(1)
	}

	// Read mail account credentials from .env file.
	env, err := config.LoadEnv()
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to load the credentials",
			"err", err,
		)
		os.Exit(2)
	}

	metrics := NewImap4Metrics(conf.Client.PrometheusAddr)
	go runPromHTTP(logger, conf.Client.PrometheusAddr)

	session, err := connect(conf, logger)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to connect to IMAP server",
			"addr", conf.Server.Addr,
			"err", err,
		)
		os.Exit(3)
	}

	var svc client.Service
	svc = client.NewService(session)
	svc = client.NewMetricsService(svc, metrics.Client.Commands, metrics.Client.Failures)
	svc = client.NewLoggingService(svc, logger)

	if err := svc.Login(env.User, env.Password); err != nil {
		level.Error(logger).Log(
			"msg", "failed to login",
			"user", env.User,
			"err", err,
		)
		os.Exit(4)
	}

	status, err := svc.Select(*mailboxFlag)
	if err != nil {
		level.Error(logger).Log(
			"msg", "failed to select mailbox",
			"mailbox", *mailboxFlag,
			"err", err,
		)
		os.Exit(5)
	}

	level.Info(logger).Log(
		"msg", "mailbox selected",
		"mailbox", status.Mailbox,
		"exists", status.Exists,
		"recent", status.Recent,
		"unseen", status.Unseen,
	)

	// Inspect the flags of the most recent messages.
	if status.Exists > 0 {

		first := (status.Exists - *messagesFlag) + 1
		if first < 1 {
			first = 1
		}

		items, err := svc.Fetch(fmt.Sprintf("%d:%d", first, status.Exists), []string{"FLAGS"})
		if err != nil {
			level.Error(logger).Log(
				"msg", "failed to fetch message flags",
				"err", err,
			)
			os.Exit(6)
		}

		for _, item := range items {
			level.Info(logger).Log(
				"msg", "message",
				"seq", item.Seq,
				"attributes", imap.BuildList(item.Attributes),
			)
		}
	}

	if err := svc.Logout(); err != nil {
		level.Warn(logger).Log(
			"msg", "failed to logout cleanly",
			"err", err,
		)
	}
}
