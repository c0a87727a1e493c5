package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPackagingLine(t *testing.T) {
	cases := []struct {
		name, category string
		want           bool
	}{
		{"Pack", "", true},
		{" packs ", "", true},
		{"Takeaway bag", "", true},
		{"Take  away", "", true},
		{"CONTAINER", "", true},
		{"Eco box", "Packaging", true},
		{"Takeaway Jollof", "", false},
		{"Bag of Chin Chin", "", false},
		{"Packed lunch", "", false},
		{"Jollof Rice", "food", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsPackagingLine(tc.name, tc.category), "%q/%q", tc.name, tc.category)
	}
}
