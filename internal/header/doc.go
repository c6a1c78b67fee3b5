// Package header scans FITS headers out of a byte view.
//
// A header is a sequence of 2880-byte blocks, each holding 36 records of 80
// bytes. Scanning starts at the first byte of the view and proceeds block by
// block until the block containing the END record has been consumed. Records
// following END in that block are filler: they are kept in the raw record
// list but never interpreted.
//
// # Output
//
// [Scan] produces a [Header] with three views of the same records:
//
//   - The ordered raw record list ([Header.Records]), filler included.
//   - A keyword to value map ([Header.Value]). Keyword repetition is not
//     allowed by the format outside commentary keywords; if it happens the
//     most recent record wins.
//   - A commentary log ([Header.Commentary]) mapping COMMENT, HISTORY and
//     CONTINUE to their fragments in file order. Fragments are appended,
//     never overwritten or deduplicated.
//
// The number of header blocks is ceil(len(records) * 80 / 2880), which is
// always a whole number of blocks since scanning only consumes full blocks.
//
// # Usage
//
//	h, err := header.Scan(binary.NewView(data))
//	bitpix, ok := h.Value("BITPIX")
//	history := h.Commentary("HISTORY")
//
// # Errors
//
//   - [ErrMissingTerminator]: the view ends (or only a partial block remains)
//     before an END record
package header
