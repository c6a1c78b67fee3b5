package record

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the fixed width of a header record in bytes.
const Size = 80

// KeywordWidth is the width of the keyword field.
const KeywordWidth = 8

// Reserved keywords referenced by the scanner.
const (
	KeywordEnd      = "END"
	KeywordComment  = "COMMENT"
	KeywordHistory  = "HISTORY"
	KeywordContinue = "CONTINUE"
)

// ErrMalformed is returned when a record is not exactly Size bytes of
// printable ASCII.
var ErrMalformed = errors.New("malformed header record")

// valueIndicator marks a record as carrying a value in bytes 8-9.
const valueIndicator = "= "

// Record is one 80-byte header record.
type Record string

// Parse validates b as a header record.
func Parse(b []byte) (Record, error) {
	if len(b) != Size {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrMalformed, Size, len(b))
	}
	for i, c := range b {
		if c < ' ' || c > '~' {
			return "", fmt.Errorf("%w: byte %d is 0x%02x, not printable ASCII", ErrMalformed, i, c)
		}
	}
	return Record(b), nil
}

// Keyword returns the right-trimmed keyword field. It reports false when the
// field is blank-led or not KeywordWidth bytes wide.
func (r Record) Keyword() (string, bool) {
	if len(r) < KeywordWidth {
		return "", false
	}
	field := string(r[:KeywordWidth])
	if field[0] == ' ' {
		return "", false
	}
	return strings.TrimRight(field, " "), true
}

// HasValueIndicator reports whether bytes 8-9 are "= ".
func (r Record) HasValueIndicator() bool {
	return len(r) >= KeywordWidth+2 && string(r[KeywordWidth:KeywordWidth+2]) == valueIndicator
}

// Value returns the value field: everything after byte 9 up to the first
// '/' outside a quoted string, trimmed. Must not be called for commentary
// keywords.
func (r Record) Value() string {
	if len(r) <= KeywordWidth+1 {
		return ""
	}
	field := string(r[KeywordWidth+1:])
	if i := commentStart(field); i >= 0 {
		field = field[:i]
	}
	return strings.TrimSpace(field)
}

// Comment returns the inline comment following the value, trimmed.
func (r Record) Comment() string {
	if !r.HasValueIndicator() {
		return ""
	}
	field := string(r[KeywordWidth+1:])
	i := commentStart(field)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(field[i+1:])
}

// Fragment returns bytes 8 onward verbatim. Commentary keywords carry their
// text here instead of in a value.
func (r Record) Fragment() string {
	if len(r) <= KeywordWidth {
		return ""
	}
	return string(r[KeywordWidth:])
}

// IsTerminator reports whether r ends a header. The keyword field must read
// exactly END; ENDTIME and similar keywords do not terminate.
func (r Record) IsTerminator() bool {
	trimmed := strings.TrimSpace(string(r))
	if !strings.HasPrefix(trimmed, KeywordEnd) {
		return false
	}
	rest := trimmed[len(KeywordEnd):]
	return rest == "" || rest[0] == ' '
}

// IsBlank reports whether the record holds only spaces.
func (r Record) IsBlank() bool {
	return strings.TrimSpace(string(r)) == ""
}

// String returns the raw record text.
func (r Record) String() string {
	return string(r)
}

// IsCommentary reports whether keyword belongs to the closed set of
// free-text keywords.
func IsCommentary(keyword string) bool {
	switch keyword {
	case KeywordComment, KeywordHistory, KeywordContinue:
		return true
	}
	return false
}

// commentStart returns the index of the first '/' outside single quotes, or
// -1. A doubled quote inside a string toggles twice and stays quoted.
func commentStart(s string) int {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case '/':
			if !quoted {
				return i
			}
		}
	}
	return -1
}
