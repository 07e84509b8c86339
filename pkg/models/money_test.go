package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{45769, "₹45,769"},
		{124999, "₹1,24,999"},
		{12345678, "₹1,23,45,678"},
		{-2500, "-₹2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupees(tt.in), "FormatRupees(%d)", tt.in)
	}
}
