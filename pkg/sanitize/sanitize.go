// Package sanitize cleans raw user input before it reaches a form.
package sanitize

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is the byte limit used when neither an option nor the
// environment sets one.
const DefaultMaxInputSize = 4096

// EnvMaxInputSize overrides DefaultMaxInputSize.
const EnvMaxInputSize = "ARBOR_MAX_INPUT_SIZE"

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer enforces a size limit, rejects malformed UTF-8 and strips control
// characters other than newline, tab and carriage return.
type Sanitizer struct {
	limit int
}

// New returns a Sanitizer. A limit <= 0 falls back to the environment, then to the default.
func New(limit int) *Sanitizer {
	if limit <= 0 {
		limit = MaxInputSize()
	}
	return &Sanitizer{limit: limit}
}

// Limit returns the byte limit in effect.
func (s *Sanitizer) Limit() int { return s.limit }

// Clean returns the input with unsafe control characters removed.
// Oversized input is rejected, never truncated.
func (s *Sanitizer) Clean(input string) (string, error) {
	if len(input) > s.limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), s.limit)
	}
	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(input, unsafeControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, input), nil
}

// Input cleans input with the limit taken from the environment.
func Input(input string) (string, error) {
	return New(0).Clean(input)
}

// MaxInputSize reads EnvMaxInputSize, ignoring values that are not positive integers.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
