package imap

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Structs

var parseTests = []struct {
	in  string
	out Value
}{
	{
		"(A (B C) D)",
		NewList(NewAtom("A"), NewList(NewAtom("B"), NewAtom("C")), NewAtom("D")),
	},
	{
		"A  B",
		NewList(NewAtom("A"), NewAtom("B")),
	},
	{
		"{3}\r\nabc def",
		NewList(NewAtom("abc"), NewAtom("def")),
	},
	{
		"{7}\r\nabc def",
		NewList(NewAtom("abc def")),
	},
	{
		"{10}\r\n(not)\"a\"{} X",
		NewList(NewAtom("(not)\"a\"{}"), NewAtom("X")),
	},
	{
		"\"he said \\\"hi\\\"\"",
		NewList(NewAtom("he said \\\"hi\\\"")),
	},
	{
		"\"\"",
		NewList(NewAtom("")),
	},
	{
		"BODY[HEADER.FIELDS (DATE FROM)]",
		NewList(NewAtom("BODY[HEADER.FIELDS (DATE FROM)]")),
	},
	{
		"(\\Answered \\Flagged)",
		NewList(NewAtom("\\Answered"), NewAtom("\\Flagged")),
	},
	{
		"()",
		NewList(),
	},
	{
		"",
		NewList(),
	},
	{
		"UID 5 FLAGS (\\Seen)",
		NewList(NewAtom("UID"), NewAtom("5"), NewAtom("FLAGS"), NewList(NewAtom("\\Seen"))),
	},
}

var parseErrorTests = []struct {
	in  string
	out error
}{
	{"(A B", ErrUnexpectedEnd},
	{"(A (B C) D", ErrUnexpectedEnd},
	{")", ErrUnexpectedEnd},
	{"A)", ErrUnexpectedEnd},
	{"BODY[HEADER", ErrUnmatchedBracket},
	{"\"unterminated", ErrUnterminatedString},
	{"\"ends with escape \\\"", ErrUnterminatedString},
	{"{3x}\r\nabc", ErrInvalidLiteralPrelude},
	{"{}\r\n", ErrInvalidLiteralPrelude},
	{"{12", ErrInvalidLiteralPrelude},
	{"{3}abc", ErrInvalidLiteral},
	{"{3}\r\nab", ErrInvalidLiteral},
	{"{5}\r\nab", ErrInvalidLiteral},
}

// Functions

// TestParseList executes a table test on the response
// grammar parser with well-formed input.
func TestParseList(t *testing.T) {

	for _, tt := range parseTests {

		parsed, err := ParseList(tt.in)

		require.Nilf(t, err, "parsing %q should not return an error", tt.in)
		assert.Equalf(t, tt.out, parsed, "parsing %q should yield the expected structure", tt.in)
	}
}

// TestParseListErrors executes a table test on the response
// grammar parser with malformed input.
func TestParseListErrors(t *testing.T) {

	for _, tt := range parseErrorTests {

		_, err := ParseList(tt.in)

		require.NotNilf(t, err, "parsing %q should return an error", tt.in)
		assert.Equalf(t, tt.out, errors.Cause(err), "parsing %q should fail with the expected grammar error", tt.in)
		assert.Truef(t, IsMalformedResponse(err), "the error for %q should classify as a malformed response", tt.in)
	}
}

// TestParseListLiteralBinarySafety checks that delimiters
// inside a byte-counted literal carry no grammar meaning.
func TestParseListLiteralBinarySafety(t *testing.T) {

	parsed, err := ParseList("(BODY {8}\r\na\r\nb (c\" X)")

	require.Nil(t, err)
	assert.Equal(t, NewList(NewAtom("BODY"), NewAtom("a\r\nb (c\""), NewAtom("X")), parsed)
}
