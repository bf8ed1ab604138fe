/*
Package crypto provides the basis for secure communication with remote IMAP
servers: a strict client-side TLS configuration used both for implicitly
encrypted connections and for the in-place channel upgrade after STARTTLS.
*/
package crypto
