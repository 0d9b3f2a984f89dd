// Package tokens quotes and splits the flat token vectors used as option
// strings. Split(Join(ts)) reproduces ts for every token sequence.
package tokens

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnterminatedQuote = errors.New("tokens: unterminated quote")
	ErrTrailingBackslash = errors.New("tokens: string ends with a backslash")
)

// recordSeparator is escaped as the six characters \u001E.
const recordSeparator = '\u001E'

var escapes = map[rune]string{
	'\\':            `\\`,
	'\'':            `\'`,
	'"':             `\"`,
	'\t':            `\t`,
	'\n':            `\n`,
	'\r':            `\r`,
	'%':             `\%`,
	recordSeparator: `\u001E`,
}

var unescapes = map[byte]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'%':  '%',
}

func needsQuoting(token string) bool {
	if token == "" {
		return true
	}
	return strings.IndexFunc(token, func(r rune) bool {
		return unicode.IsSpace(r) || r == '"' || r == '\''
	}) >= 0
}

// Escape backslash-escapes the characters that cannot appear raw inside a
// quoted token. Bytes that are not valid UTF-8 are copied unchanged.
func Escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if e, ok := escapes[r]; ok {
			sb.WriteString(e)
		} else {
			sb.WriteString(s[i : i+size])
		}
		i += size
	}
	return sb.String()
}

// Unescape reverses Escape. Unknown escape sequences are kept verbatim.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		if strings.HasPrefix(s[i:], `\u001E`) {
			sb.WriteRune(recordSeparator)
			i += len(`\u001E`) - 1
			continue
		}
		if r, ok := unescapes[s[i+1]]; ok {
			sb.WriteRune(r)
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Quote returns token as it must appear in a joined option string.
func Quote(token string) string {
	if !needsQuoting(token) {
		return token
	}
	return `"` + Escape(token) + `"`
}

// Join quotes each token and separates them with a single space.
func Join(tokens []string) string {
	quoted := make([]string, 0, len(tokens))
	for _, t := range tokens {
		quoted = append(quoted, Quote(t))
	}
	return strings.Join(quoted, " ")
}

// Split breaks s into tokens at whitespace. A token opened by a double or
// single quote runs to the matching unescaped quote and is unescaped.
func Split(s string) ([]string, error) {
	var out []string
	rest := s
	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			return out, nil
		}

		if q := rest[0]; q == '"' || q == '\'' {
			i := 1
			for ; i < len(rest) && rest[i] != q; i++ {
				if rest[i] == '\\' {
					i++
					if i >= len(rest) {
						return nil, ErrTrailingBackslash
					}
				}
			}
			if i >= len(rest) {
				return nil, ErrUnterminatedQuote
			}
			out = append(out, Unescape(rest[1:i]))
			rest = rest[i+1:]
			continue
		}

		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		out = append(out, rest[:end])
		rest = rest[end:]
	}
}
