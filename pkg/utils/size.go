package utils

import (
	"fmt"
	"strconv"
)

// HumanizeBytes formats a byte count into a readable string.
func HumanizeBytes(b uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)
	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// sizeUnits are the suffixes used by FormatSize, one per power of 1024.
const sizeUnits = "KMGTPEZY"

// FormatSize formats a byte count for the disk usage columns, e.g.
// 900 -> "900", 1100 -> "1K", 2.1 MiB -> "2M".
//
// Values under 1024 are printed as is. Larger values are scaled down by
// 1024 until they fit in the next unit, and printed with no decimals.
func FormatSize(size uint64) string {
	if size < 1024 {
		return strconv.FormatUint(size, 10)
	}

	unit := 0
	for size > 1<<20 && unit < len(sizeUnits)-1 {
		unit++
		size >>= 10
	}

	return fmt.Sprintf("%.0f%c", float64(size)/1024, sizeUnits[unit])
}
