package header

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robert-malhotra/go-fits/internal/binary"
	"github.com/robert-malhotra/go-fits/internal/record"
)

// BlockSize is the size of every FITS header and data block.
const BlockSize = 2880

// RecordsPerBlock is the number of header records in one block.
const RecordsPerBlock = BlockSize / record.Size

// ErrMissingTerminator is returned when input ends before an END record.
var ErrMissingTerminator = errors.New("header has no END record")

// Header is a parsed FITS header.
type Header struct {
	// records holds every record of every scanned block, including the
	// blank filler after END.
	records []record.Record

	// terminator is the index of the END record within records.
	terminator int

	values     map[string]string
	comments   map[string]string
	commentary map[string][]string

	// order lists keywords in order of first appearance.
	order []string
}

// Scan reads header blocks from the start of v until the block containing
// the END record. Blocks are 2880 bytes; a trailing partial block counts as
// exhausted input.
func Scan(v binary.View) (*Header, error) {
	h := &Header{
		terminator: -1,
		values:     make(map[string]string),
		comments:   make(map[string]string),
		commentary: make(map[string][]string),
	}

	for n := 0; ; n++ {
		block, err := v.Block(n, BlockSize)
		if err != nil {
			return nil, fmt.Errorf("%w: scanned %d blocks (%d bytes) at offset %d",
				ErrMissingTerminator, n, n*BlockSize, v.Base())
		}
		done, err := h.scanBlock(block)
		if err != nil {
			return nil, err
		}
		if done {
			return h, nil
		}
	}
}

// scanBlock consumes one block and reports whether it held the terminator.
func (h *Header) scanBlock(block binary.View) (bool, error) {
	raw := block.Bytes()
	for i := 0; i < RecordsPerBlock; i++ {
		rec, err := record.Parse(raw[i*record.Size : (i+1)*record.Size])
		if err != nil {
			return false, fmt.Errorf("record %d at offset %d: %w",
				len(h.records), block.Base()+int64(i*record.Size), err)
		}
		h.records = append(h.records, rec)

		if h.terminator >= 0 {
			// Filler after END is kept raw but never interpreted.
			continue
		}
		// Only a standalone END keyword terminates; ENDTIME and friends do not.
		if rec.IsTerminator() {
			h.terminator = len(h.records) - 1
			continue
		}
		h.add(rec)
	}
	return h.terminator >= 0, nil
}

func (h *Header) add(rec record.Record) {
	key, ok := rec.Keyword()
	if !ok {
		return
	}
	if record.IsCommentary(key) {
		h.note(key)
		h.commentary[key] = append(h.commentary[key], rec.Fragment())
		return
	}
	if !rec.HasValueIndicator() {
		return
	}
	h.note(key)
	h.values[key] = rec.Value()
	if c := rec.Comment(); c != "" {
		h.comments[key] = c
	} else {
		delete(h.comments, key)
	}
}

func (h *Header) note(key string) {
	if _, seen := h.values[key]; seen {
		return
	}
	if _, seen := h.commentary[key]; seen {
		return
	}
	h.order = append(h.order, key)
}

// Records returns a copy of every scanned record in file order.
func (h *Header) Records() []record.Record {
	return slices.Clone(h.records)
}

// Len returns the number of scanned records, filler included.
func (h *Header) Len() int {
	return len(h.records)
}

// TerminatorIndex returns the 0-based index of the END record.
func (h *Header) TerminatorIndex() int {
	return h.terminator
}

// BlockCount returns the number of header blocks.
func (h *Header) BlockCount() int {
	return int(binary.BlocksFor(int64(len(h.records)*record.Size), BlockSize))
}

// Value returns the value of keyword and whether it is present.
func (h *Header) Value(keyword string) (string, bool) {
	v, ok := h.values[keyword]
	return v, ok
}

// Has reports whether keyword carries a value.
func (h *Header) Has(keyword string) bool {
	_, ok := h.values[keyword]
	return ok
}

// Comment returns the inline comment of keyword's record, if any.
func (h *Header) Comment(keyword string) string {
	return h.comments[keyword]
}

// Commentary returns the fragments recorded for a commentary keyword, in
// file order.
func (h *Header) Commentary(keyword string) []string {
	return slices.Clone(h.commentary[keyword])
}

// Keywords returns the interpreted keywords in order of first appearance.
func (h *Header) Keywords() []string {
	return slices.Clone(h.order)
}
