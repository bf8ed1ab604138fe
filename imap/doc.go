/*
Package imap implements the client-side protocol engine of go-imap4: a line
connection over an exclusively owned byte stream, a parser and builder for
the parenthesized response grammar, a transformer that buckets untagged
response lines by keyword, and a session that dispatches tagged commands
and tracks the IMAP state a connection is in.

Commands are issued strictly one at a time. A call blocks from the moment
the command line is sent until the matching tagged completion line arrives
or the transport fails. Commands answered with NO or BAD surface as a
CommandError and leave the connection usable; transport failures are fatal
and require the caller to reconnect.

Please refer to https://tools.ietf.org/html/rfc3501#section-3 for full
documentation on the states and https://tools.ietf.org/html/rfc3501 for
the full IMAP v4 rev1 RFC.
*/
package imap
