// Package record parses individual FITS header records.
//
// A header record (historically a "card") is exactly 80 bytes of printable
// ASCII. The layout is positional:
//
//	bytes 0-7   keyword, left-justified, space padded
//	bytes 8-9   value indicator "= " when the record carries a value
//	bytes 10-79 value, optionally followed by "/ comment"
//
// # Keywords
//
// [Record.Keyword] returns the right-trimmed keyword field. A record whose
// first byte is a space has no keyword. Keywords are case-sensitive.
//
// # Values
//
// [Record.Value] returns the text after the indicator, cut at the first '/'
// that is not inside a single-quoted string, and trimmed. The result is
// always a string; numeric and logical interpretation belongs to the caller.
//
// # Commentary Keywords
//
// COMMENT, HISTORY and CONTINUE never carry a parsed value, even when the
// value indicator is present. Their bytes 8 onward are returned verbatim by
// [Record.Fragment] and accumulated by the header scanner in file order.
//
// # Long Strings
//
// The CONTINUE long-string convention is not implemented: string values are
// never concatenated across records. CONTINUE records are surfaced as
// commentary fragments so that the primary value stays exactly what its own
// record says.
//
// # Errors
//
//   - [ErrMalformed]: the record is not exactly [Size] bytes, or holds a
//     byte outside printable ASCII (0x20-0x7E)
package record
