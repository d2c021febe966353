package scorever

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.2", "1.2.0", 0},
		{"0.5.0", "1.0.0", -1},
		{"2.1.0", "2.0.0", 1},
		{"2.0.9", "2.1.0", -1},
		{"10.0.0", "9.0.0", 1},
		{" 1.0.0 ", "1.0.0", 0},
		{"garbage", "0.0.0", 0},
		{"1.x.3", "1.0.3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name            string
		stored          string
		compatible      bool
		requiresRescore bool
	}{
		{"empty predates versioning", "", true, false},
		{"whitespace only", "   ", true, false},
		{"current version", Current, true, false},
		{"minimum version", Minimum, true, false},
		{"between minimum and current", "2.0.5", true, false},
		{"newer than current", "3.0.0", true, false},
		{"below minimum", "1.9.9", false, true},
		{"far below minimum", "0.5.0", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.stored)
			assert.Equal(t, tt.compatible, got.Compatible)
			assert.Equal(t, tt.requiresRescore, got.RequiresRescore)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestConstantsOrdered(t *testing.T) {
	assert.LessOrEqual(t, Compare(Minimum, Current), 0, "minimum never exceeds current")
}
