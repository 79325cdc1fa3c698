package sorter

import (
	"math"
	"strings"
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// CompareVersions compares two strings like strverscmp(3): runs of digits
// are compared by their numeric value.
//
// The scan stops at the first position where both strings have a digit.
// From there, only the two digit runs are compared, and the rest of the
// strings is ignored. If a run does not fit in 64 bits, the strings are
// compared lexicographically.
func CompareVersions(s1, s2 string) int {
	i := 0
	for {
		switch {
		case i == len(s1) && i == len(s2):
			return 0
		case i == len(s1):
			return -1
		case i == len(s2):
			return 1
		}

		a, b := s1[i], s2[i]
		if isDigit(a) && isDigit(b) {
			break
		}

		if a != b {
			if a < b {
				return -1
			}
			return 1
		}

		i++
	}

	n1, ok1 := parseRun(s1[i:])
	n2, ok2 := parseRun(s2[i:])
	if !ok1 || !ok2 {
		return strings.Compare(s1, s2)
	}

	switch {
	case n1 < n2:
		return -1
	case n1 > n2:
		return 1
	}
	return 0
}

// parseRun returns the value of the digits at the start of s. The boolean
// is false on overflow.
func parseRun(s string) (uint64, bool) {
	var n uint64
	for i := 0; i < len(s) && isDigit(s[i]); i++ {
		d := uint64(s[i] - '0')
		if n > (math.MaxUint64-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}
