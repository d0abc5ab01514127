package assistant

import (
	"regexp"
	"strings"
)

// ActionButton is the renderable form of a link embedded in a bot message.
// Primary buttons are calls to action (apply/register targets).
type ActionButton struct {
	Label   string
	Href    string
	Primary bool
}

var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)

// ActionButtons extracts markdown links from a bot message into the
// action-button model the presentation layer renders.
func ActionButtons(text string) []ActionButton {
	matches := linkPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	buttons := make([]ActionButton, 0, len(matches))
	for _, m := range matches {
		label, href := m[1], m[2]
		buttons = append(buttons, ActionButton{
			Label:   label,
			Href:    href,
			Primary: strings.Contains(href, "#apply") || strings.Contains(href, "#register"),
		})
	}
	return buttons
}
