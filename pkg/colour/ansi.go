package colour

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// SupportsANSIColours reports whether stdout is a terminal and NO_COLOR is unset.
func SupportsANSIColours() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Preview returns a solid block of the given colour, width characters wide.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return bg(c) + strings.Repeat(" ", width) + ansiReset
}

// PreviewWithText renders text centred on a block of bg using the fg text colour.
// A translucent fg is composited over bg first so terminals see the real tint.
func PreviewWithText(background RGB, fg RGBA, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	shown := Composite(fg, background.WithAlpha(0xff)).RGB()

	displayText := text
	if len(text) > width {
		displayText = text[:width]
	} else if len(text) < width {
		padding := (width - len(text)) / 2
		displayText = strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)
	}

	return bg(background) + fgSeq(shown) + displayText + ansiReset
}

func bg(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
}

func fgSeq(c RGB) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, c.R, c.G, c.B, ansiSuffix)
}
