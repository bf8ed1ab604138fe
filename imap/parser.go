package imap

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Functions

// isGrammarSpace reports whether c separates tokens when it
// appears outside of quoted strings, brackets and literals.
func isGrammarSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// ParseList parses one response-grammar string into nested
// values. The top level is an implicit list: input without any
// parentheses yields the list of its top-level tokens, while a
// closing parenthesis that completes the outermost opened frame
// returns that frame directly.
//
// Each opening delimiter determines the consumption rule for
// what follows, so a single left-to-right pass over the text
// with an explicit stack of list frames is sufficient.
func ParseList(text string) (Value, error) {

	// Stack of open list frames. Element 0 is the implicit
	// outermost frame collecting top-level tokens.
	frames := make([][]Value, 1, 4)

	// Accumulator for the atom currently being scanned.
	var atom strings.Builder

	// flush finalizes a pending atom into the current frame.
	flush := func() {

		if atom.Len() == 0 {
			return
		}

		top := len(frames) - 1
		frames[top] = append(frames[top], NewAtom(atom.String()))
		atom.Reset()
	}

	for i := 0; i < len(text); i++ {

		c := text[i]

		switch {

		case c == '(':
			flush()
			frames = append(frames, []Value{})

		case c == ')':

			flush()

			if len(frames) == 1 {
				return Value{}, errors.Wrap(ErrUnexpectedEnd, "closing parenthesis without an open list")
			}

			closed := NewList(frames[len(frames)-1]...)
			frames = frames[:len(frames)-1]

			if len(frames) == 1 {
				// The outermost explicit frame was closed,
				// hand it back as the parse result.
				return closed, nil
			}

			top := len(frames) - 1
			frames[top] = append(frames[top], closed)

		case c == '[':

			// A bracketed section is no token of its own. It is
			// carried verbatim, brackets included, as part of
			// the atom currently being accumulated.
			end := strings.IndexByte(text[i+1:], ']')
			if end < 0 {
				return Value{}, ErrUnmatchedBracket
			}

			atom.WriteString(text[i : i+end+2])
			i += end + 1

		case c == '"':

			flush()

			j := i + 1
			for {

				if j >= len(text) {
					return Value{}, ErrUnterminatedString
				}

				// A quote preceded by a backslash does not
				// terminate the string. The backslash itself is
				// retained, mirroring the wire format.
				if text[j] == '"' && text[j-1] != '\\' {
					break
				}

				j++
			}

			top := len(frames) - 1
			frames[top] = append(frames[top], NewAtom(text[i+1:j]))
			i = j

		case c == '{':

			flush()

			j := i + 1
			for j < len(text) && text[j] != '}' {

				if text[j] < '0' || text[j] > '9' {
					return Value{}, errors.Wrapf(ErrInvalidLiteralPrelude, "unexpected character %q", text[j])
				}

				j++
			}

			if j >= len(text) || j == (i+1) {
				return Value{}, ErrInvalidLiteralPrelude
			}

			n, err := strconv.Atoi(text[(i + 1):j])
			if err != nil {
				return Value{}, errors.Wrap(ErrInvalidLiteralPrelude, err.Error())
			}

			if (j+2) >= len(text) || text[j+1] != '\r' || text[j+2] != '\n' {
				return Value{}, errors.Wrap(ErrInvalidLiteral, "literal count is not followed by CRLF")
			}

			start := j + 3
			if (start + n) > len(text) {
				return Value{}, errors.Wrapf(ErrInvalidLiteral, "announced %d bytes but fewer remain", n)
			}

			// The literal payload is binary safe: delimiters
			// inside it carry no grammar meaning.
			top := len(frames) - 1
			frames[top] = append(frames[top], NewAtom(text[start:(start+n)]))
			i = (start + n) - 1

		case isGrammarSpace(c):
			flush()

		default:
			atom.WriteByte(c)
		}
	}

	if len(frames) > 1 {
		return Value{}, errors.Wrap(ErrUnexpectedEnd, "response text ended with an open list")
	}

	flush()

	return NewList(frames[0]...), nil
}
