package tiktok

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectChallenge(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"slider challenge", "Drag the slider to fit the puzzle", true},
		{"human check", "Please VERIFY YOU ARE HUMAN to continue", true},
		{"verification word", "Security verification required", true},
		{"case insensitive", "dRaG tHe SlIdEr", true},
		{"clean profile page", "Follow  Message  123 Followers", false},
		{"empty page", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectChallenge(tt.text))
		})
	}
}
