package fits

import (
	"fmt"
	"strconv"
	"strings"
)

// Text returns keyword as a character string. Enclosing quotes are
// removed, doubled quotes are unescaped and trailing blanks are dropped.
// Unquoted values are returned as-is.
func (u *Unit) Text(keyword string) (string, error) {
	raw, err := u.RequireHeaderValue(keyword)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(raw, "'") {
		return raw, nil
	}
	if len(raw) < 2 || !strings.HasSuffix(raw, "'") {
		return "", fmt.Errorf("%w: %s = %s: unterminated string", ErrInvalidValue, keyword, raw)
	}
	s := strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
	return strings.TrimRight(s, " "), nil
}

// Int returns keyword as an integer.
func (u *Unit) Int(keyword string) (int64, error) {
	raw, err := u.RequireHeaderValue(keyword)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q is not an integer", ErrInvalidValue, keyword, raw)
	}
	return v, nil
}

// Float returns keyword as a real number. Fortran D exponents are accepted.
func (u *Unit) Float(keyword string) (float64, error) {
	raw, err := u.RequireHeaderValue(keyword)
	if err != nil {
		return 0, err
	}
	s := strings.NewReplacer("D", "E", "d", "e").Replace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q is not a number", ErrInvalidValue, keyword, raw)
	}
	return v, nil
}

// Bool returns a logical keyword (T or F).
func (u *Unit) Bool(keyword string) (bool, error) {
	raw, err := u.RequireHeaderValue(keyword)
	if err != nil {
		return false, err
	}
	switch raw {
	case "T":
		return true, nil
	case "F":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s = %q is not T or F", ErrInvalidValue, keyword, raw)
}
