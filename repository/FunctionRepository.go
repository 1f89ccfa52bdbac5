package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("record not found")

// ParseSequenceCode extracts n from a "<prefix>-<n>" code.
func ParseSequenceCode(prefix, code string) (int, bool) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, prefix+"-") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(code, prefix+"-"))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// GenerateSequenceCode returns "<prefix>-%03d" following the highest code in
// codes, or fallback when none of them match.
func GenerateSequenceCode(prefix string, codes []string, fallback int) string {
	highest, found := 0, false
	for _, code := range codes {
		if n, ok := ParseSequenceCode(prefix, code); ok {
			found = true
			if n > highest {
				highest = n
			}
		}
	}
	next := fallback
	if found {
		next = highest + 1
	}
	return fmt.Sprintf("%s-%03d", prefix, next)
}
