package team

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HashCompany turns a free-text company name into the anonymous identifier
// responses are keyed by, e.g. "Acme " → "company_1s1tm".
//
// The name is lower-cased with full Unicode case mapping (U+0130 becomes
// "i\u0307", a word-final sigma becomes "ς") and trimmed of ECMAScript white
// space, then folded with the 31-multiplier 32-bit string hash over its
// UTF-16 code units. The result is the absolute value in base 36. This is not a cryptographic hash; it only keeps plain
// company names out of storage. The output must stay stable: stored rows are
// looked up by it.
func HashCompany(name string) string {
	normalized := strings.TrimFunc(cases.Lower(language.Und).String(name), isTrimSpace)

	var h int32
	for _, unit := range utf16.Encode([]rune(normalized)) {
		h = (h << 5) - h + int32(unit)
	}

	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return "company_" + strconv.FormatInt(abs, 36)
}

// isTrimSpace matches the white space and line terminators String.prototype.trim
// strips: unicode.IsSpace without NEL, plus the byte order mark.
func isTrimSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
