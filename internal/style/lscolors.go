package style

import (
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LsColors is a color scheme in the format used by the LS_COLORS
// environment variable.
type LsColors struct {
	types    map[string]lipgloss.Style
	suffixes []suffixStyle
}

type suffixStyle struct {
	suffix string
	style  lipgloss.Style
}

// ParseLsColors parses a LS_COLORS string. Invalid entries are ignored.
func ParseLsColors(s string) *LsColors {
	lc := &LsColors{types: make(map[string]lipgloss.Style)}

	for _, entry := range strings.Split(s, ":") {
		key, codes, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}

		st, ok := parseSGR(codes)
		if !ok {
			continue
		}

		if suffix, ok := strings.CutPrefix(key, "*"); ok {
			if suffix != "" {
				lc.suffixes = append(lc.suffixes, suffixStyle{strings.ToLower(suffix), st})
			}
			continue
		}

		lc.types[key] = st
	}

	// Longest suffix first. Stable, so later duplicates keep their order.
	sort.SliceStable(lc.suffixes, func(i, j int) bool {
		return len(lc.suffixes[i].suffix) > len(lc.suffixes[j].suffix)
	})

	return lc
}

// StyleFor implements Lookup.
func (lc *LsColors) StyleFor(path string, info fs.FileInfo) (lipgloss.Style, bool) {
	if info == nil {
		return lc.typeStyle("no")
	}

	mode := info.Mode()

	switch {
	case mode&fs.ModeSymlink != 0:
		if _, err := os.Stat(path); err != nil {
			if st, ok := lc.types["or"]; ok {
				return st, true
			}
		}
		return lc.typeStyle("ln")

	case mode.IsDir():
		sticky := mode&fs.ModeSticky != 0
		otherWritable := mode.Perm()&0o002 != 0
		switch {
		case sticky && otherWritable:
			if st, ok := lc.types["tw"]; ok {
				return st, true
			}
		case otherWritable:
			if st, ok := lc.types["ow"]; ok {
				return st, true
			}
		case sticky:
			if st, ok := lc.types["st"]; ok {
				return st, true
			}
		}
		return lc.typeStyle("di")

	case mode&fs.ModeNamedPipe != 0:
		return lc.typeStyle("pi")

	case mode&fs.ModeSocket != 0:
		return lc.typeStyle("so")

	case mode&fs.ModeDevice != 0:
		if mode&fs.ModeCharDevice != 0 {
			return lc.typeStyle("cd")
		}
		return lc.typeStyle("bd")

	case mode&fs.ModeCharDevice != 0:
		return lc.typeStyle("cd")
	}

	if mode&fs.ModeSetuid != 0 {
		if st, ok := lc.types["su"]; ok {
			return st, true
		}
	}

	if mode&fs.ModeSetgid != 0 {
		if st, ok := lc.types["sg"]; ok {
			return st, true
		}
	}

	if mode.Perm()&0o111 != 0 {
		if st, ok := lc.types["ex"]; ok {
			return st, true
		}
	}

	name := strings.ToLower(info.Name())
	for _, s := range lc.suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.style, true
		}
	}

	return lc.typeStyle("fi")
}

func (lc *LsColors) typeStyle(key string) (lipgloss.Style, bool) {
	st, ok := lc.types[key]
	if !ok && key != "no" {
		st, ok = lc.types["no"]
	}
	return st, ok
}

// parseSGR converts a list of SGR parameters, like "01;38;5;208", to a
// style.
func parseSGR(codes string) (lipgloss.Style, bool) {
	st := lipgloss.NewStyle()
	if codes == "" {
		return st, false
	}

	params := strings.Split(codes, ";")
	for i := 0; i < len(params); i++ {
		n, err := strconv.Atoi(params[i])
		if err != nil {
			return st, false
		}

		switch {
		case n == 0:
			st = lipgloss.NewStyle()
		case n == 1:
			st = st.Bold(true)
		case n == 2:
			st = st.Faint(true)
		case n == 3:
			st = st.Italic(true)
		case n == 4:
			st = st.Underline(true)
		case n == 5:
			st = st.Blink(true)
		case n == 7:
			st = st.Reverse(true)
		case n == 9:
			st = st.Strikethrough(true)
		case n >= 30 && n <= 37:
			st = st.Foreground(lipgloss.Color(strconv.Itoa(n - 30)))
		case n >= 40 && n <= 47:
			st = st.Background(lipgloss.Color(strconv.Itoa(n - 40)))
		case n >= 90 && n <= 97:
			st = st.Foreground(lipgloss.Color(strconv.Itoa(n - 90 + 8)))
		case n >= 100 && n <= 107:
			st = st.Background(lipgloss.Color(strconv.Itoa(n - 100 + 8)))
		case n == 38 || n == 48:
			c, used, ok := extendedColor(params[i+1:])
			if !ok {
				return st, false
			}
			i += used
			if n == 38 {
				st = st.Foreground(c)
			} else {
				st = st.Background(c)
			}
		}
	}

	return st, true
}

// extendedColor reads the arguments after a 38/48 code: "5;n" or
// "2;r;g;b". It returns the color and the number of consumed parameters.
func extendedColor(params []string) (lipgloss.Color, int, bool) {
	if len(params) == 0 {
		return "", 0, false
	}

	switch params[0] {
	case "5":
		if len(params) < 2 {
			return "", 0, false
		}
		n, err := strconv.Atoi(params[1])
		if err != nil || n < 0 || n > 255 {
			return "", 0, false
		}
		return lipgloss.Color(params[1]), 2, true

	case "2":
		if len(params) < 4 {
			return "", 0, false
		}
		var rgb [3]uint64
		for k := range rgb {
			v, err := strconv.ParseUint(params[k+1], 10, 8)
			if err != nil {
				return "", 0, false
			}
			rgb[k] = v
		}
		hex := "#" + hexByte(rgb[0]) + hexByte(rgb[1]) + hexByte(rgb[2])
		return lipgloss.Color(hex), 4, true
	}

	return "", 0, false
}

func hexByte(v uint64) string {
	s := strconv.FormatUint(v, 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
