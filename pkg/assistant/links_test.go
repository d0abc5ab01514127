package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionButtonsExtractsLinks(t *testing.T) {
	text := "We found roles for you!\n" +
		"[Apply Now](https://jobs.example.com/123#apply)\n" +
		"[View Details](https://jobs.example.com/123)\n" +
		"[Register for the event](https://events.example.com/45#register)"

	buttons := ActionButtons(text)
	require.Len(t, buttons, 3)

	assert.Equal(t, ActionButton{Label: "Apply Now", Href: "https://jobs.example.com/123#apply", Primary: true}, buttons[0])
	assert.Equal(t, ActionButton{Label: "View Details", Href: "https://jobs.example.com/123", Primary: false}, buttons[1])
	assert.Equal(t, ActionButton{Label: "Register for the event", Href: "https://events.example.com/45#register", Primary: true}, buttons[2])
}

func TestActionButtonsPlainTextYieldsNone(t *testing.T) {
	assert.Nil(t, ActionButtons("No links here, just advice."))
	assert.Nil(t, ActionButtons(""))
}

func TestActionButtonsIgnoresMalformedMarkdown(t *testing.T) {
	buttons := ActionButtons("[broken link(https://example.com) and [label] alone")
	assert.Nil(t, buttons)
}
