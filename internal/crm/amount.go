package crm

import (
	"fmt"
	"strings"
)

// Indian numbering buckets.
const (
	lakh  = 100_000
	crore = 10_000_000
)

// FormatAmount renders a monetary amount the way the CRM screens show
// it: crores above one crore, lakhs above one lakh, grouped rupees
// below that. Trailing zero decimals are trimmed ("1.50 Cr" → "1.5 Cr").
func FormatAmount(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	var formatted string
	switch {
	case amount >= crore:
		formatted = trimDecimal(fmt.Sprintf("%.2f", amount/crore)) + " Cr"
	case amount >= lakh:
		formatted = trimDecimal(fmt.Sprintf("%.2f", amount/lakh)) + " L"
	default:
		formatted = groupRupees(int64(amount + 0.5))
	}
	if negative {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

func trimDecimal(value string) string {
	value = strings.TrimRight(value, "0")
	return strings.TrimSuffix(value, ".")
}

// groupRupees inserts Indian-style digit grouping: the last three
// digits form one group, the rest pair off (12,34,567).
func groupRupees(value int64) string {
	digits := fmt.Sprintf("%d", value)
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
