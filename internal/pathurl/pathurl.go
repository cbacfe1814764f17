package pathurl

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a percent-decoded path is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("decoded path is not valid UTF-8")

// schemePrefixes are stripped by Decode, first match wins.
var schemePrefixes = []string{
	"file://localhost/",
	"file:///",
	"file://",
}

const (
	localhostPrefix = "file://localhost"
	upperHex        = "0123456789ABCDEF"
)

// Decode converts a URL-form value into a file system path.
// Empty and whitespace-only values are returned unchanged.
func Decode(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return value, nil
	}

	rest := value
	for _, prefix := range schemePrefixes {
		if strings.HasPrefix(rest, prefix) {
			rest = rest[len(prefix):]
			break
		}
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return value, fmt.Errorf("decoding %q: %w", value, err)
	}
	if !utf8.ValidString(decoded) {
		return value, fmt.Errorf("decoding %q: %w", value, ErrInvalidUTF8)
	}

	if !strings.HasPrefix(decoded, "/") && !HasDriveLetter(decoded) {
		decoded = "/" + decoded
	}
	return decoded, nil
}

// Encode converts a file system path into URL form. Each segment is
// percent-encoded on its own so separators survive; a leading drive letter
// segment is kept verbatim. Relative paths get no scheme prefix.
// Empty and whitespace-only values are returned unchanged.
func Encode(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}

	normalized := strings.ReplaceAll(path, `\`, "/")
	drive := HasDriveLetter(normalized)

	segments := strings.Split(normalized, "/")
	for i, seg := range segments {
		if i == 0 && drive {
			continue
		}
		segments[i] = escapeComponent(seg)
	}
	encoded := strings.Join(segments, "/")

	switch {
	case strings.HasPrefix(encoded, "/"):
		return localhostPrefix + encoded
	case drive:
		return localhostPrefix + "/" + encoded
	default:
		return encoded
	}
}

// HasDriveLetter reports whether p starts with a Windows drive such as "C:".
func HasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// escapeComponent percent-encodes everything except the URI component
// unreserved set: A-Z a-z 0-9 - _ . ! ~ * ' ( )
func escapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
