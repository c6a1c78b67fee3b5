package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s string) Record {
	return Record(s + strings.Repeat(" ", Size-len(s)))
}

func TestParseLength(t *testing.T) {
	for _, n := range []int{0, 79, 81, 160} {
		_, err := Parse([]byte(strings.Repeat("A", n)))
		assert.ErrorIs(t, err, ErrMalformed, "length %d", n)
	}

	r, err := Parse([]byte(strings.Repeat(" ", Size)))
	require.NoError(t, err)
	assert.True(t, r.IsBlank())
}

func TestParseErrorReportsLengths(t *testing.T) {
	_, err := Parse(make([]byte, 79))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 80 bytes, got 79")
}

func TestParseRejectsNonPrintable(t *testing.T) {
	for _, c := range []byte{0x00, '\t', 0x1f, 0x7f, 0xc3} {
		b := []byte(card("OBJECT  = 'M31'"))
		b[20] = c
		_, err := Parse(b)
		require.ErrorIs(t, err, ErrMalformed, "byte 0x%02x", c)
		assert.Contains(t, err.Error(), "byte 20")
	}

	_, err := Parse([]byte(card("TILDE   = '~'")))
	assert.NoError(t, err)
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
		ok   bool
	}{
		{"simple", card("SIMPLE  =                    T"), "SIMPLE", true},
		{"full width", card("DATE-OBS= '2020-01-01'"), "DATE-OBS", true},
		{"end", card("END"), "END", true},
		{"blank led", card("   NAXIS= 3"), "", false},
		{"blank", card(""), "", false},
		{"lower case kept", card("naxis   = 2"), "naxis", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rec.Keyword()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordIdempotent(t *testing.T) {
	r := card("BITPIX  =                   16 / bits per pixel")
	k1, ok1 := r.Keyword()
	k2, ok2 := r.Keyword()
	assert.Equal(t, k1, k2)
	assert.Equal(t, ok1, ok2)
}

func TestValueIndicator(t *testing.T) {
	assert.True(t, card("NAXIS   =                    2").HasValueIndicator())
	assert.False(t, card("NAXIS   =2").HasValueIndicator())
	assert.False(t, card("HISTORY this = that").HasValueIndicator())
	assert.False(t, card("END").HasValueIndicator())
}

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want string
	}{
		{"integer", card("NAXIS   =                    2 / number of axes"), "2"},
		{"logical", card("SIMPLE  =                    T"), "T"},
		{"float", card("BSCALE  =                  1.5/ scale"), "1.5"},
		{"string", card("OBJECT  = 'M31     '           / target"), "'M31     '"},
		{"slash in string", card("DATE    = '2020/01/02'         / date"), "'2020/01/02'"},
		{"escaped quote", card("OBSERVER= 'O''Neil / x'  / name"), "'O''Neil / x'"},
		{"no comment", card("EXPTIME =                 30.0"), "30.0"},
		{"empty", card("UNDEF   =                      / undefined"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.Value())
		})
	}
}

func TestComment(t *testing.T) {
	assert.Equal(t, "number of axes", card("NAXIS   =                    2 / number of axes").Comment())
	assert.Equal(t, "date", card("DATE    = '2020/01/02'         / date").Comment())
	assert.Equal(t, "", card("EXPTIME =                 30.0").Comment())
	assert.Equal(t, "", card("COMMENT a / b").Comment())
}

func TestFragment(t *testing.T) {
	r := card("COMMENT   FITS (Flexible Image Transport System) format")
	f := r.Fragment()
	assert.Len(t, f, Size-KeywordWidth)
	assert.True(t, strings.HasPrefix(f, "  FITS (Flexible"))

	// Value indicator does not turn commentary into a value
	r = card("HISTORY = not a value")
	assert.Equal(t, "= not a value", strings.TrimRight(r.Fragment(), " "))
}

func TestIsCommentary(t *testing.T) {
	for _, k := range []string{"COMMENT", "HISTORY", "CONTINUE"} {
		assert.True(t, IsCommentary(k), k)
	}
	for _, k := range []string{"", "comment", "END", "NAXIS", "COMMENTS"} {
		assert.False(t, IsCommentary(k), k)
	}
}

func TestIsTerminator(t *testing.T) {
	assert.True(t, card("END").IsTerminator())
	assert.True(t, card("END     / trailing").IsTerminator())
	assert.False(t, card("ENDTIME = '12:00'").IsTerminator())
	assert.False(t, card("").IsTerminator())
	assert.False(t, card("SIMPLE  =                    T").IsTerminator())
}
