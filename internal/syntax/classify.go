package syntax

import (
	"bytes"
	"strings"
)

// separators are the bytes that terminate a word, in addition to
// whitespace and NUL. The set is fixed and language-independent.
const separators = ",.()+-/*=~%<>[];"

// IsSeparator reports whether b ends a word for keyword and number
// boundary purposes.
func IsSeparator(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == 0 ||
		strings.IndexByte(separators, b) >= 0
}

// Classify assigns a Class to every byte of a rendered line. A nil
// profile classifies everything as ClassNormal. The pass is line-local:
// string and comment state never crosses line boundaries.
func Classify(render []byte, p *Profile) []Class {
	hl := make([]Class, len(render))
	if p == nil {
		return hl
	}

	prevSep := true
	var inString byte

	i := 0
	for i < len(render) {
		c := render[i]
		prevClass := ClassNormal
		if i > 0 {
			prevClass = hl[i-1]
		}

		if inString == 0 && p.LineComment != "" &&
			bytes.HasPrefix(render[i:], []byte(p.LineComment)) {
			for j := i; j < len(render); j++ {
				hl[j] = ClassComment
			}
			break
		}

		if p.Strings {
			if inString != 0 {
				hl[i] = ClassString
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = ClassString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				hl[i] = ClassString
				i++
				continue
			}
		}

		if p.Numbers {
			if (isDigit(c) && (prevSep || prevClass == ClassNumber)) ||
				(c == '.' && prevClass == ClassNumber) {
				hl[i] = ClassNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := matchKeyword(render[i:], p.Keywords); n > 0 {
				for j := 0; j < n; j++ {
					hl[i+j] = class
				}
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return hl
}

// matchKeyword finds the longest profile keyword starting at the head of
// rest whose following byte (or end of line) is a separator. It returns
// the matched length in bytes and the keyword's class, or 0 if nothing
// matches.
func matchKeyword(rest []byte, keywords []string) (int, Class) {
	best := 0
	class := ClassNormal
	for _, kw := range keywords {
		secondary := strings.HasSuffix(kw, SecondaryMarker)
		if secondary {
			kw = kw[:len(kw)-len(SecondaryMarker)]
		}
		n := len(kw)
		if n == 0 || n < best || n > len(rest) {
			continue
		}
		if string(rest[:n]) != kw {
			continue
		}
		if n < len(rest) && !IsSeparator(rest[n]) {
			continue
		}
		best = n
		if secondary {
			class = ClassKeywordSecondary
		} else {
			class = ClassKeywordPrimary
		}
	}
	return best, class
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
