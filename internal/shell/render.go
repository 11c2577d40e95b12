package shell

import (
	"strings"

	"github.com/gookit/color"

	"github.com/rvrsh3ll/ldap-shell/internal/completer"
)

// Background styles per object-category color tag.
var backgroundStyles = map[completer.HighlightColor]color.Color{
	completer.ColorBrightGreen:   color.BgLightGreen,
	completer.ColorBrightRed:     color.BgLightRed,
	completer.ColorBrightYellow:  color.BgLightYellow,
	completer.ColorBrightMagenta: color.BgLightMagenta,
}

// Style of the substring that matched the operator's current word.
var matchStyle = color.New(color.FgBlack, color.OpBold)

// renderCandidate renders a candidate's display fragments to ANSI text: the
// whole candidate carries its category's background color, the matched span
// is additionally bold with black foreground.
func renderCandidate(c completer.Candidate) string {
	bg, hasBG := backgroundStyles[c.Color]

	var b strings.Builder
	for _, fragment := range c.Display {
		style := color.New()
		if hasBG {
			style = append(style, bg)
		}
		if fragment.Match {
			style = append(style, matchStyle...)
		}
		if len(style) == 0 {
			b.WriteString(fragment.Text)
			continue
		}
		b.WriteString(style.Render(fragment.Text))
	}

	return b.String()
}
