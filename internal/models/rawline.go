package models

// RawLine is one logical row of extracted document content after
// continuation merging. It is transient: produced by the loader, consumed
// by the parser, and discarded afterwards.
type RawLine struct {
	// Page is the 1-based page number the row started on.
	Page int
	// Line is the 1-based line number within the page.
	Line int
	// Text is the full row text with wrapped continuation lines already
	// appended.
	Text string
}
