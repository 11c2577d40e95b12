package shell

import (
	"strings"
	"unicode"
)

// splitArgs splits a command line into tokens, honoring double and single
// quotes so display names containing spaces stay intact. An unterminated
// quote consumes the rest of the line.
func splitArgs(line string) []string {
	var args []string
	var current strings.Builder
	var quote rune
	inToken := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if inToken {
		args = append(args, current.String())
	}

	return args
}
