package imap

import (
	"bufio"
	"io"
	"net"
	"strings"
	"time"

	"crypto/tls"

	"github.com/pkg/errors"
)

// Structs

// Connection carries all transport-level information specific to
// one session with an IMAP server. It owns the underlying byte
// stream exclusively: closing it or upgrading it to TLS mutates
// the single ownership slot in place.
type Connection struct {
	Conn        net.Conn
	Reader      *bufio.Reader
	ReadTimeout time.Duration
}

// Functions

// NewConnection creates a new element of above connection struct
// and fills it with content from a supplied, real connection to
// an IMAP server. A zero readTimeout lets reads block forever.
func NewConnection(c net.Conn, readTimeout time.Duration) *Connection {

	return &Connection{
		Conn:        c,
		Reader:      bufio.NewReader(c),
		ReadTimeout: readTimeout,
	}
}

// Receive awaits text from the server until a newline symbol
// and deletes the line-ending symbols afterwards again. A clean
// close of the stream surfaces as ErrConnectionClosed. A read
// deadline that fires while partial line data was produced keeps
// that data and tries again; a deadline that fires without any
// new bytes gives up with ErrTimeout.
func (c *Connection) Receive() (string, error) {

	var line strings.Builder

	for {

		if c.ReadTimeout > 0 {

			err := c.Conn.SetReadDeadline(time.Now().Add(c.ReadTimeout))
			if err != nil {
				return "", errors.Wrap(err, "failed to set read deadline on connection")
			}
		}

		part, err := c.Reader.ReadString('\n')
		line.WriteString(part)

		if err == nil {
			return strings.TrimRight(line.String(), "\r\n"), nil
		}

		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {

			// Accumulate partial data supplied alongside the
			// timeout marker and grant the server one more
			// read period.
			if len(part) > 0 {
				continue
			}

			return "", ErrTimeout
		}

		if (err == io.EOF) || errors.Is(err, net.ErrClosed) {
			return "", ErrConnectionClosed
		}

		return "", errors.Wrap(err, "failed to receive line from server")
	}
}

// Send takes in a command line as a string, appends the protocol
// line ending and writes it to the connection to the server. If
// the transport does not accept the full byte count, the
// connection has to be considered broken.
func (c *Connection) Send(text string) error {

	msg := []byte(text + "\r\n")

	n, err := c.Conn.Write(msg)
	if err != nil {
		return errors.Wrap(ErrBrokenConnection, err.Error())
	}

	if n != len(msg) {
		return errors.Wrapf(ErrBrokenConnection, "accepted %d of %d bytes", n, len(msg))
	}

	return nil
}

// UpgradeTLS wraps the owned byte stream into an encrypted
// channel in place. All further reads and writes go through the
// wrapped channel. The caller must have drained every line the
// server sent in plaintext before upgrading.
func (c *Connection) UpgradeTLS(tlsConfig *tls.Config) error {

	tlsConn := tls.Client(c.Conn, tlsConfig)

	if err := tlsConn.Handshake(); err != nil {
		return errors.Wrap(err, "TLS handshake with server failed")
	}

	c.Conn = tlsConn
	c.Reader = bufio.NewReader(tlsConn)

	return nil
}

// Terminate closes the connection to the server.
func (c *Connection) Terminate() error {

	if err := c.Conn.Close(); err != nil {
		return errors.Wrap(err, "failed to terminate connection")
	}

	return nil
}
