package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"summer/internal/grid"
)

// escapeWidth is the width of a "\xHH" escape.
const escapeWidth = 4

// Quote returns name ready to be displayed: control characters and bytes
// that are not valid UTF-8 are replaced with "\xHH" escapes.
//
// If maxWidth is positive and the result is wider, it is cut to leave
// room for a one-column ellipsis, and the boolean is true. Characters are
// never split.
func Quote(name string, maxWidth int) (string, bool) {
	if isPlainASCII(name) {
		if maxWidth > 0 && len(name) > maxWidth {
			return name[:maxWidth-1], true
		}
		return name, false
	}

	type piece struct {
		text  string
		width int
	}

	var pieces []piece
	total := 0

	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])

		var p piece
		switch {
		case r == utf8.RuneError && size == 1:
			p = piece{fmt.Sprintf(`\x%02X`, name[i]), escapeWidth}
		case unicode.IsControl(r) && r < 0x100:
			p = piece{fmt.Sprintf(`\x%02X`, r), escapeWidth}
		default:
			p = piece{name[i : i+size], grid.RuneWidth(r)}
		}

		pieces = append(pieces, p)
		total += p.width
		i += size
	}

	var b strings.Builder
	if maxWidth <= 0 || total <= maxWidth {
		for _, p := range pieces {
			b.WriteString(p.text)
		}
		return b.String(), false
	}

	used := 0
	for _, p := range pieces {
		if used+p.width > maxWidth-1 {
			break
		}
		b.WriteString(p.text)
		used += p.width
	}

	return b.String(), true
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] >= 0x7f {
			return false
		}
	}
	return true
}
