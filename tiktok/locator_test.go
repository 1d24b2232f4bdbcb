package tiktok

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCascadesOrderSpecificToGeneric(t *testing.T) {
	// The head of each cascade is the stable attribute match and the text
	// match sits at the tail; the priority order is what makes a lookup
	// deterministic when several expressions would hit.
	require.NotEmpty(t, MessageButton.Expressions)
	assert.Contains(t, MessageButton.Expressions[0].Selector, "data-e2e")
	assert.Empty(t, MessageButton.Expressions[0].Text)

	last := MessageButton.Expressions[len(MessageButton.Expressions)-1]
	assert.NotEmpty(t, last.Text)

	require.NotEmpty(t, MessageInput.Expressions)
	assert.Contains(t, MessageInput.Expressions[0].Selector, "data-e2e")
}

func TestCascadesHaveFallbacks(t *testing.T) {
	for _, l := range []Locator{MessageButton, MessageInput, CaptchaClose} {
		assert.GreaterOrEqual(t, len(l.Expressions), 2, "%s needs at least one fallback", l.Name)
		for _, expr := range l.Expressions {
			assert.NotEmpty(t, expr.Selector, "%s has an empty selector", l.Name)
		}
	}
}

func TestTextExpressionsAreRodRegexes(t *testing.T) {
	for _, l := range []Locator{MessageButton, MessageInput, CaptchaClose} {
		for _, expr := range l.Expressions {
			if expr.Text == "" {
				continue
			}
			assert.True(t, strings.HasPrefix(expr.Text, "/"), "%s text %q must be a /.../ regex", l.Name, expr.Text)
		}
	}
}
