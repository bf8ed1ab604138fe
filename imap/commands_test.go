package imap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Structs

var quoteTests = []struct {
	in  string
	out string
}{
	{"INBOX", "\"INBOX\""},
	{"two words", "\"two words\""},
	{"he said \"hi\"", "\"he said \\\"hi\\\"\""},
	{"back\\slash", "\"back\\\\slash\""},
	{"", "\"\""},
}

// Functions

// TestQuoteString executes a table test on the quoted-string
// escaping used for command arguments.
func TestQuoteString(t *testing.T) {

	for _, tt := range quoteTests {
		assert.Equal(t, tt.out, quoteString(tt.in))
	}
}

// TestCapability checks decoding of the CAPABILITY answer.
func TestCapability(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{
			expect: "CAPABILITY",
			replies: []string{
				"* CAPABILITY IMAP4rev1 STARTTLS AUTH=PLAIN",
				"{tag} OK CAPABILITY completed",
			},
		},
	})
	defer done()

	caps, err := session.Capability()

	require.Nil(t, err)
	assert.Equal(t, []string{"IMAP4rev1", "STARTTLS", "AUTH=PLAIN"}, caps)
}

// TestLoginQuoting checks that credentials travel as escaped
// quoted strings.
func TestLoginQuoting(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{
			expect:  "LOGIN \"jane\" \"pa\\\"ss\"",
			replies: []string{"{tag} OK LOGIN completed"},
		},
	})
	defer done()

	err := session.Login("jane", "pa\"ss")

	require.Nil(t, err)
	assert.Equal(t, StateAuthenticated, session.State)
}

// TestSelectDecoding checks that the untagged SELECT answers
// are collected into one mailbox status.
func TestSelectDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{
			expect: "SELECT \"INBOX\"",
			replies: []string{
				"* 18 EXISTS",
				"* 2 RECENT",
				"* FLAGS (\\Answered \\Flagged \\Deleted \\Seen \\Draft)",
				"* OK [UNSEEN 12] Message 12 is first unseen",
				"* OK [UIDVALIDITY 3857529045] UIDs valid",
				"* OK [UIDNEXT 4392] Predicted next UID",
				"{tag} OK [READ-WRITE] SELECT completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))

	status, err := session.Select("INBOX")
	require.Nil(t, err)

	assert.Equal(t, "INBOX", status.Mailbox)
	assert.Equal(t, 18, status.Exists)
	assert.Equal(t, 2, status.Recent)
	assert.Equal(t, 12, status.Unseen)
	assert.Equal(t, 3857529045, status.UIDValidity)
	assert.Equal(t, 4392, status.UIDNext)
	assert.Equal(t, []string{"\\Answered", "\\Flagged", "\\Deleted", "\\Seen", "\\Draft"}, status.Flags)
	assert.False(t, status.ReadOnly)
	assert.Equal(t, "INBOX", session.SelectedMailbox)
	assert.Equal(t, StateMailbox, session.State)
}

// TestExamineReadOnly checks that EXAMINE marks the opened
// mailbox read-only.
func TestExamineReadOnly(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{
			expect: "EXAMINE \"INBOX\"",
			replies: []string{
				"* 18 EXISTS",
				"{tag} OK [READ-ONLY] EXAMINE completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))

	status, err := session.Examine("INBOX")
	require.Nil(t, err)

	assert.True(t, status.ReadOnly)
	assert.Equal(t, 18, status.Exists)
}

// TestListDecoding checks decoding of LIST answers including
// quoted mailbox names containing spaces.
func TestListDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{
			expect: "LIST \"\" \"*\"",
			replies: []string{
				"* LIST (\\HasNoChildren) \"/\" INBOX",
				"* LIST (\\Noselect \\HasChildren) \"/\" \"Archive 2019\"",
				"{tag} OK LIST completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))

	infos, err := session.List("", "*")
	require.Nil(t, err)
	require.Len(t, infos, 2)

	assert.Equal(t, MailboxInfo{
		Flags:     []string{"\\HasNoChildren"},
		Delimiter: "/",
		Name:      "INBOX",
	}, infos[0])

	assert.Equal(t, MailboxInfo{
		Flags:     []string{"\\Noselect", "\\HasChildren"},
		Delimiter: "/",
		Name:      "Archive 2019",
	}, infos[1])
}

// TestStatusDecoding checks the item-count decoding of STATUS.
func TestStatusDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{
			expect: "STATUS \"Drafts\" (MESSAGES RECENT UNSEEN)",
			replies: []string{
				"* STATUS \"Drafts\" (MESSAGES 4 RECENT 1 UNSEEN 2)",
				"{tag} OK STATUS completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))

	counts, err := session.Status("Drafts", []string{"MESSAGES", "RECENT", "UNSEEN"})
	require.Nil(t, err)

	assert.Equal(t, map[string]int{"MESSAGES": 4, "RECENT": 1, "UNSEEN": 2}, counts)
}

// TestSearchDecoding checks that SEARCH answers lower into
// sequence numbers.
func TestSearchDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{expect: "SELECT", replies: []string{"{tag} OK SELECT completed"}},
		{
			expect: "SEARCH UNSEEN",
			replies: []string{
				"* SEARCH 2 84 882",
				"{tag} OK SEARCH completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))
	_, err := session.Select("INBOX")
	require.Nil(t, err)

	nums, err := session.Search("UNSEEN")
	require.Nil(t, err)
	assert.Equal(t, []int{2, 84, 882}, nums)
}

// TestFetchDecoding checks per-message decoding of FETCH
// answers including the folded sequence number.
func TestFetchDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{expect: "SELECT", replies: []string{"{tag} OK SELECT completed"}},
		{
			expect: "FETCH 1:2 (UID FLAGS)",
			replies: []string{
				"* 1 FETCH (UID 5 FLAGS (\\Seen))",
				"* 2 FETCH (UID 7 FLAGS ())",
				"{tag} OK FETCH completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))
	_, err := session.Select("INBOX")
	require.Nil(t, err)

	items, err := session.Fetch("1:2", []string{"UID", "FLAGS"})
	require.Nil(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].Seq)
	assert.Equal(t, NewList(
		NewAtom("UID"), NewAtom("5"),
		NewAtom("FLAGS"), NewList(NewAtom("\\Seen")),
	), items[0].Attributes)

	assert.Equal(t, 2, items[1].Seq)
	assert.Equal(t, NewList(
		NewAtom("UID"), NewAtom("7"),
		NewAtom("FLAGS"), NewList(),
	), items[1].Attributes)
}

// TestStoreDecoding checks that STORE answers reuse the FETCH
// decoding.
func TestStoreDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{expect: "SELECT", replies: []string{"{tag} OK SELECT completed"}},
		{
			expect: "STORE 3 +FLAGS (\\Deleted)",
			replies: []string{
				"* 3 FETCH (FLAGS (\\Deleted))",
				"{tag} OK STORE completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))
	_, err := session.Select("INBOX")
	require.Nil(t, err)

	items, err := session.Store("3", "+FLAGS", []string{"\\Deleted"})
	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Seq)
}

// TestExpungeDecoding checks the sequence numbers reported by
// EXPUNGE.
func TestExpungeDecoding(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{expect: "SELECT", replies: []string{"{tag} OK SELECT completed"}},
		{
			expect: "EXPUNGE",
			replies: []string{
				"* 3 EXPUNGE",
				"* 3 EXPUNGE",
				"* 5 EXPUNGE",
				"{tag} OK EXPUNGE completed",
			},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))
	_, err := session.Select("INBOX")
	require.Nil(t, err)

	nums, err := session.Expunge()
	require.Nil(t, err)
	assert.Equal(t, []int{3, 3, 5}, nums)
}

// TestAppendLiteral checks that APPEND ships its payload as a
// non-synchronizing literal in the same exchange.
func TestAppendLiteral(t *testing.T) {

	session, done := newScriptedSession(t, []scriptStep{
		{expect: "LOGIN", replies: []string{"{tag} OK LOGIN completed"}},
		{
			expect:  "APPEND \"Drafts\" (\\Draft) {5+}",
			consume: 1,
			replies: []string{"{tag} OK APPEND completed"},
		},
	})
	defer done()

	require.Nil(t, session.Login("jane", "secret"))

	err := session.Append("Drafts", []string{"\\Draft"}, time.Time{}, "hello")
	require.Nil(t, err)
}
