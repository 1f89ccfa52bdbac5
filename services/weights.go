package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var quintal = decimal.NewFromInt(100)

// Entries like "12kg" or "10 bags" count by their leading number.
var (
	leadingInt    = regexp.MustCompile(`^[+-]?\d+`)
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// numericPrefix drops thousands separators and returns the leading match.
func numericPrefix(raw string, re *regexp.Regexp) string {
	return re.FindString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// parseWeight reads the leading number of a weight cell; input with no
// leading number counts as zero.
func parseWeight(raw string) decimal.Decimal {
	num := numericPrefix(raw, leadingNumber)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NetWeight returns loading minus tare, and the same value in quintals.
func NetWeight(loadingWeight, tareWeight string) (net, netQuintal string) {
	n := parseWeight(loadingWeight).Sub(parseWeight(tareWeight))
	return n.String(), n.Div(quintal).String()
}

// ParseCount reads the leading integer of a packet count, so "3.5" is 3.
// Input with no leading digits counts as zero.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(numericPrefix(raw, leadingInt))
	if err != nil {
		return 0
	}
	return n
}

// SumPackets adds up to three packet counts.
func SumPackets(counts ...string) int {
	total := 0
	for _, c := range counts {
		total += ParseCount(c)
	}
	return total
}
