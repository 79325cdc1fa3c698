package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"summer/internal/grid"
	"summer/internal/style"
	"summer/pkg/utils"
)

// Format strings for the info boxes can contain these specifiers:
//
//	%%      literal '%'
//	%P      path
//	%p      path, with the home directory replaced by '~'
//	%S      disk usage of the files in the directory
//	%+      added lines (git)
//	%-      deleted lines (git)
//	%C{…}   color, or %C{reset} to restore the color of the box
//	%V{…}   variable
//
// Anything else, including an unknown specifier, is literal text.

type tokenKind int

const (
	tokText tokenKind = iota
	tokVariable
	tokStyle
	tokStyleReset
	tokPath
	tokPathHome
	tokDiskUsage
	tokAddedLines
	tokDeletedLines
)

type token struct {
	kind  tokenKind
	text  string
	style lipgloss.Style
}

func parseInfo(format string) []token {
	var tokens []token

	for s := format; s != ""; {
		if tok, rest, ok := parseSpecifier(s); ok {
			tokens = append(tokens, tok)
			s = rest
			continue
		}

		// Split at the next '%'.
		i := strings.IndexByte(s[1:], '%')
		if i < 0 {
			tokens = append(tokens, token{kind: tokText, text: s})
			break
		}
		i++

		before, after := s[:i], s[i:]
		if after == "%" {
			tokens = append(tokens, token{kind: tokText, text: s})
			break
		}

		tokens = append(tokens, token{kind: tokText, text: before})
		s = after
	}

	return tokens
}

var simpleSpecifiers = map[byte]tokenKind{
	'P': tokPath,
	'p': tokPathHome,
	'S': tokDiskUsage,
	'+': tokAddedLines,
	'-': tokDeletedLines,
}

// parseSpecifier parses the specifier at the start of s.
func parseSpecifier(s string) (token, string, bool) {
	spec, ok := strings.CutPrefix(s, "%")
	if !ok || spec == "" {
		return token{}, "", false
	}

	if kind, ok := simpleSpecifiers[spec[0]]; ok {
		return token{kind: kind}, spec[1:], true
	}

	switch spec[0] {
	case '%':
		return token{kind: tokText, text: "%"}, spec[1:], true

	case 'C', 'V':
		end := strings.IndexByte(spec, '}')
		if end < 0 {
			return token{}, "", false
		}

		arg, ok := strings.CutPrefix(spec[:end], string(spec[0])+"{")
		if !ok {
			return token{}, "", false
		}

		rest := spec[end+1:]

		if spec[0] == 'V' {
			return token{kind: tokVariable, text: arg}, rest, true
		}

		arg = strings.TrimSpace(arg)
		if arg == "reset" {
			return token{kind: tokStyleReset}, rest, true
		}

		c, err := style.Parse(arg)
		if err != nil {
			return token{}, "", false
		}
		return token{kind: tokStyle, style: c.Style}, rest, true
	}

	return token{}, "", false
}

func (r *renderer) info(text string, base lipgloss.Style) *grid.Column {
	column := grid.NewColumn(true)
	column.Style = base

	current := base
	var row grid.Row

	add := func(s string) {
		row.Add(s, current)
	}

	for _, tok := range parseInfo(text) {
		switch tok.kind {
		case tokText:
			lines := strings.Split(tok.text, "\n")
			for i, line := range lines {
				if i > 0 {
					column.Push(row)
					row = grid.Row{}
				}
				add(line)
			}

		case tokVariable:
			add(strconv.Itoa(r.analysis.Variables[tok.text]))

		case tokStyle:
			current = style.Combine(current, tok.style)

		case tokStyleReset:
			current = base

		case tokPath:
			add(r.analysis.Path)

		case tokPathHome:
			add(abbreviateHome(r.analysis.Path, r.env.Home))

		case tokDiskUsage:
			add(utils.FormatSize(r.analysis.DiskUsageFiles))

		case tokAddedLines:
			if c := r.analysis.Changes; c != nil {
				add(strconv.FormatUint(uint64(c.Insertions), 10))
			}

		case tokDeletedLines:
			if c := r.analysis.Changes; c != nil {
				add(strconv.FormatUint(uint64(c.Deletions), 10))
			}
		}
	}

	if !row.Empty() {
		column.Push(row)
	}

	return column
}

func abbreviateHome(path, home string) string {
	if home == "" {
		return path
	}

	if rest, ok := strings.CutPrefix(path, home); ok {
		return "~" + rest
	}

	return path
}
