package extract

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// minPrimaryChars is the size below which the byte filter is abandoned for UTF-8 decoding.
	minPrimaryChars = 50
	// MinTextChars is the shortest recovered text accepted for analysis.
	MinTextChars = 20
)

// ErrTextTooShort is returned when too little readable text survives recovery.
var ErrTextTooShort = errors.New("could not extract readable text from PDF; ensure the PDF contains selectable text")

// Recover pulls a best-effort plain-text approximation out of raw document bytes.
//
// There is no PDF parsing here: every byte is treated as a Latin-1 character and
// only a narrow character class is kept. Compressed or non-Latin content streams
// come back empty or garbled, in which case ErrTextTooShort is returned.
func Recover(data []byte) (string, error) {
	text := filterBytes(data)
	if utf8.RuneCountInString(text) < minPrimaryChars {
		text = decodeRuns(data)
	}

	text = Normalize(text)
	if utf8.RuneCountInString(text) < MinTextChars {
		return "", ErrTextTooShort
	}
	return text, nil
}

// Normalize collapses whitespace runs to one space, treating anything outside the
// broad character class as whitespace, and trims the result. It is idempotent.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if isSpace(r) || !(isWord(r) || isBroad(r)) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimFunc(b.String(), isSpace)
}

func filterBytes(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		r := rune(c)
		if isNarrow(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// decodeRuns decodes data as UTF-8 (invalid sequences become U+FFFD) and joins
// every maximal run of broad-class characters with a single space.
func decodeRuns(data []byte) string {
	decoded := strings.ToValidUTF8(string(data), string(utf8.RuneError))

	var runs []string
	start := -1
	for i, r := range decoded {
		if isBroad(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, decoded[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, decoded[start:])
	}
	return strings.Join(runs, " ")
}

func isNarrow(r rune) bool {
	if isAlnum(r) || isSpace(r) {
		return true
	}
	switch r {
	case '@', '.', '-', '(', ')':
		return true
	}
	return false
}

func isBroad(r rune) bool {
	if isNarrow(r) {
		return true
	}
	switch r {
	case ',', ';', ':', '!', '?', '\'', '"':
		return true
	}
	return false
}

func isWord(r rune) bool {
	return isAlnum(r) || r == '_'
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// isSpace matches the ECMAScript whitespace and line terminator set, which is
// wider than unicode.IsSpace in places (U+FEFF) and narrower in others (U+0085).
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}
