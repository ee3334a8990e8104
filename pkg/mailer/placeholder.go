package mailer

import (
	"fmt"
	"strings"
)

// Placeholders maps placeholder names to substitution values.
type Placeholders map[string]string

// Bind substitutes {name} placeholders in pattern.
//
// "{{" and "}}" produce literal braces. A placeholder missing from values is
// ErrUnresolvedPlaceholder, a lone brace or a non-identifier inside braces is
// ErrMalformedPattern; both wrap ErrBindFailed. Nothing is left unexpanded.
func Bind(pattern string, values Placeholders) (string, error) {
	return expand(pattern, func(name string) (string, bool) {
		v, ok := values[name]
		return v, ok
	})
}

// PlaceholderNames returns the distinct placeholder names referenced by
// pattern, in order of first appearance.
func PlaceholderNames(pattern string) ([]string, error) {
	var names []string
	seen := make(map[string]struct{})
	_, err := expand(pattern, func(name string) (string, bool) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		return "", true
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func expand(pattern string, lookup func(string) (string, bool)) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '{' && i+1 < len(pattern) && pattern[i+1] == '{':
			b.WriteByte('{')
			i++
		case c == '}' && i+1 < len(pattern) && pattern[i+1] == '}':
			b.WriteByte('}')
			i++
		case c == '{':
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return "", bindError(ErrMalformedPattern, "unclosed '{' at offset %d", i)
			}
			name := pattern[i+1 : i+1+end]
			if !isIdentifier(name) {
				return "", bindError(ErrMalformedPattern, "invalid placeholder %q at offset %d", name, i)
			}
			value, ok := lookup(name)
			if !ok {
				return "", bindError(ErrUnresolvedPlaceholder, "{%s}", name)
			}
			b.WriteString(value)
			i += end + 1
		case c == '}':
			return "", bindError(ErrMalformedPattern, "single '}' at offset %d", i)
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}

func bindError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrBindFailed, kind, fmt.Sprintf(format, args...))
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
