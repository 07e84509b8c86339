package signup

import "unicode/utf8"

type StrengthLabel string

const (
	Weak   StrengthLabel = "Weak"
	Medium StrengthLabel = "Medium"
	Strong StrengthLabel = "Strong"
)

// MaxStrength is the number of bars on the strength meter.
const MaxStrength = 6

type Strength struct {
	Score int           `json:"score"`
	Label StrengthLabel `json:"label,omitempty"`
}

// PasswordStrength scores pw for the advisory meter. It never blocks submission.
func PasswordStrength(pw string) Strength {
	if pw == "" {
		return Strength{}
	}

	score := 0
	n := utf8.RuneCountInString(pw)
	if n >= 8 {
		score++
	}
	if n >= 12 {
		score++
	}
	var lower, upper, digit, other bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, ok := range []bool{lower, upper, digit, other} {
		if ok {
			score++
		}
	}

	label := Strong
	switch {
	case score <= 2:
		label = Weak
	case score <= 4:
		label = Medium
	}
	return Strength{Score: score, Label: label}
}
