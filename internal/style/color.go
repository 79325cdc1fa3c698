// Package style converts user-facing color specifications into lipgloss
// styles, and provides the path-based color scheme used for file names.
package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Color is a style parsed from a color specification, like "bold red" or
// "yellow blue". The original text is kept to write the configuration back.
type Color struct {
	Original string
	Style    lipgloss.Style
}

// colorNames maps color names to ANSI color numbers.
var colorNames = map[string]int{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"cyan":    6,
	"white":   7,
}

// Parse builds a Color from a specification.
//
// The specification is a list of words. The first color word is the
// foreground, the second one is the background. Colors are names (with an
// optional "bright" prefix), numbers between 0 and 255, or "#rrggbb"
// values; "normal" and "default" skip a color slot. Attributes are bold,
// dim, italic, ul/underline, blink, reverse and strike; a "no" or "no-"
// prefix disables them.
func Parse(spec string) (Color, error) {
	st := lipgloss.NewStyle()
	colors := 0

	for _, word := range strings.Fields(strings.ToLower(spec)) {
		if c, ok := parseColorWord(word); ok {
			switch colors {
			case 0:
				if c != "" {
					st = st.Foreground(lipgloss.Color(c))
				}
			case 1:
				if c != "" {
					st = st.Background(lipgloss.Color(c))
				}
			default:
				return Color{}, fmt.Errorf("invalid color %q: too many colors", spec)
			}
			colors++
			continue
		}

		enable := true
		attr := word
		if rest, ok := strings.CutPrefix(attr, "no"); ok {
			enable = false
			attr = strings.TrimPrefix(rest, "-")
		}

		switch attr {
		case "bold":
			st = st.Bold(enable)
		case "dim":
			st = st.Faint(enable)
		case "italic":
			st = st.Italic(enable)
		case "ul", "underline":
			st = st.Underline(enable)
		case "blink":
			st = st.Blink(enable)
		case "reverse":
			st = st.Reverse(enable)
		case "strike", "strikethrough":
			st = st.Strikethrough(enable)
		default:
			return Color{}, fmt.Errorf("invalid color %q: unknown word %q", spec, word)
		}
	}

	return Color{Original: spec, Style: st}, nil
}

// MustParse is like Parse, but panics if spec is invalid.
func MustParse(spec string) Color {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// parseColorWord returns the lipgloss color value for word. An empty
// value with ok set means "no color" (normal/default).
func parseColorWord(word string) (string, bool) {
	switch word {
	case "normal", "default":
		return "", true
	}

	if n, ok := colorNames[word]; ok {
		return strconv.Itoa(n), true
	}

	if name, ok := strings.CutPrefix(word, "bright"); ok {
		if n, ok := colorNames[name]; ok {
			return strconv.Itoa(n + 8), true
		}
	}

	if n, err := strconv.Atoi(word); err == nil {
		if n >= 0 && n <= 255 {
			return word, true
		}
		return "", false
	}

	if len(word) == 7 && word[0] == '#' {
		if _, err := strconv.ParseUint(word[1:], 16, 32); err == nil {
			return word, true
		}
	}

	return "", false
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var spec string
	if err := node.Decode(&spec); err != nil {
		return err
	}

	parsed, err := Parse(spec)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Original, nil
}
