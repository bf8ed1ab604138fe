package imap

import (
	"strconv"
	"strings"
)

// Structs

// ResponseTable maps an untagged response keyword to the ordered
// argument strings received for it during one command. Entries
// for the same keyword appear in arrival order.
type ResponseTable map[string][]string

// Functions

// TransformResponse groups the raw lines accumulated during one
// command into logical untagged units and buckets them by their
// keyword.
//
// A line starting with '*' opens a new unit, a line starting
// with '+' is a continuation request carrying no data, and any
// other line is a literal payload continuation belonging to the
// most recently opened unit, re-joined with CRLF. The leading
// "number SP keyword" form of lines such as "3 EXISTS" or
// "2 FETCH (...)" is normalized so that the keyword indexes the
// table and the number is folded back into the argument string.
func TransformResponse(lines []string) ResponseTable {

	// First pass: merge continuation lines into blocks.
	blocks := make([]string, 0, len(lines))

	for _, line := range lines {

		switch {

		case strings.HasPrefix(line, "* "):
			blocks = append(blocks, strings.TrimPrefix(line, "* "))

		case strings.HasPrefix(line, "+"):
			// Continuation requests carry no response data.

		case len(blocks) > 0:
			// Part of a multi-line literal that the server did
			// not re-prefix. Restore the CRLF the line reader
			// stripped off.
			blocks[len(blocks)-1] = blocks[len(blocks)-1] + "\r\n" + line
		}
	}

	// Second pass: split each block into keyword and arguments.
	table := make(ResponseTable)

	for _, block := range blocks {

		parts := strings.SplitN(block, " ", 2)

		keyword := parts[0]
		args := ""
		if len(parts) > 1 {
			args = parts[1]
		}

		// Normalize the "number SP keyword" form: the token
		// after the number is the real keyword and the number
		// becomes the leading argument, separated by exactly
		// one space from any remaining text.
		if num, err := strconv.Atoi(keyword); err == nil && args != "" {

			numParts := strings.SplitN(args, " ", 2)

			keyword = numParts[0]
			args = strconv.Itoa(num)
			if len(numParts) > 1 {
				args = args + " " + numParts[1]
			}
		}

		table[keyword] = append(table[keyword], args)
	}

	return table
}
