package models

import "strconv"

// FormatRupees renders whole rupees with Indian digit grouping: the last three digits, then
// groups of two (₹1,24,999).
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	out := head
	for _, g := range groups {
		out += "," + g
	}
	return sign + "₹" + out + "," + tail
}
