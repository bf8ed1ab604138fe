package imap

// Structs

// MailboxStatus bundles the untagged status data the server
// announces when a mailbox is opened with SELECT or EXAMINE.
type MailboxStatus struct {
	Mailbox     string
	Flags       []string
	Exists      int
	Recent      int
	Unseen      int
	UIDValidity int
	UIDNext     int
	ReadOnly    bool
}

// MailboxInfo describes one mailbox entry of a LIST or LSUB
// response.
type MailboxInfo struct {
	Flags     []string
	Delimiter string
	Name      string
}

// FetchItem carries the data the server returned for one
// message of a FETCH or STORE command. Attributes holds the
// parsed parenthesized attribute list following the sequence
// number.
type FetchItem struct {
	Seq        int
	Attributes Value
}
