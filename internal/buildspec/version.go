package buildspec

import (
	"strconv"
	"strings"
)

// Satisfies reports whether the concrete version meets the selector.
// Selectors are either an exact pin ("24.05", "develop") or an inclusive
// range "lo:hi" with open ends (":20.04", "18.11:", "8.1.0:8.3.0").
func Satisfies(have, selector string) bool {
	if selector == "" {
		return true
	}
	if have == "" {
		return false
	}

	if idx := strings.Index(selector, ":"); idx != -1 {
		lo, hi := selector[:idx], selector[idx+1:]
		if lo != "" && Compare(have, lo) < 0 {
			return false
		}
		if hi != "" && Compare(have, hi) > 0 {
			return false
		}
		return true
	}

	return Compare(have, selector) == 0
}

// Compare orders two version strings. Symbolic versions (branch labels
// like "develop") sort after every numeric version; two symbolic versions
// order lexically.
func Compare(a, b string) int {
	aNum, bNum := isNumeric(a), isNumeric(b)
	switch {
	case aNum && bNum:
		return compareNumeric(a, b)
	case aNum:
		return -1
	case bNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func isNumeric(v string) bool {
	if v == "" {
		return false
	}
	for _, part := range strings.Split(v, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

func compareNumeric(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	maxLen := len(aParts)
	if len(bParts) > maxLen {
		maxLen = len(bParts)
	}

	for i := 0; i < maxLen; i++ {
		aVal, bVal := 0, 0
		if i < len(aParts) {
			aVal, _ = strconv.Atoi(aParts[i])
		}
		if i < len(bParts) {
			bVal, _ = strconv.Atoi(bParts[i])
		}
		if aVal < bVal {
			return -1
		}
		if aVal > bVal {
			return 1
		}
	}
	return 0
}
