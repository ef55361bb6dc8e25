// Package syntax provides per-line syntax classification for rendered text.
//
// Classification is intentionally line-local: each line is classified in a
// single left-to-right pass with no state carried across line boundaries.
// Multi-line strings and comments are therefore not recognized. This is a
// documented limitation, not an oversight.
package syntax

// Class is the highlight classification of one rendered byte.
type Class uint8

const (
	// ClassNormal is unclassified text, drawn in the default color.
	ClassNormal Class = iota

	// ClassComment covers a line comment through end of line.
	ClassComment

	// ClassKeywordPrimary covers a primary (flow/declaration) keyword.
	ClassKeywordPrimary

	// ClassKeywordSecondary covers a secondary (type) keyword.
	ClassKeywordSecondary

	// ClassString covers a single- or double-quoted string literal.
	ClassString

	// ClassNumber covers a numeric literal.
	ClassNumber

	// ClassMatch covers the current search match. It is applied as a
	// transient overlay and restored when the search moves on.
	ClassMatch
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case ClassNormal:
		return "Normal"
	case ClassComment:
		return "Comment"
	case ClassKeywordPrimary:
		return "KeywordPrimary"
	case ClassKeywordSecondary:
		return "KeywordSecondary"
	case ClassString:
		return "String"
	case ClassNumber:
		return "Number"
	case ClassMatch:
		return "Match"
	default:
		return "Unknown"
	}
}

// Color returns the ANSI foreground color code used to draw the class.
// ClassNormal maps to the terminal default (39).
func (c Class) Color() int {
	switch c {
	case ClassComment:
		return 36
	case ClassKeywordPrimary:
		return 33
	case ClassKeywordSecondary:
		return 32
	case ClassString:
		return 35
	case ClassNumber:
		return 31
	case ClassMatch:
		return 34
	default:
		return 39
	}
}
