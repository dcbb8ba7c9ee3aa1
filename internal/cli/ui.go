// Package cli implements the interactive terminal job browser: colored
// output, REPL command parsing and rendering of the listing view.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const LinkColor = "#87CEEB"

// UI writes styled lines to the terminal. Listing output goes to Out,
// warnings and errors to Err.
type UI struct {
	Out          io.Writer
	Err          io.Writer
	Output       *termenv.Output
	ErrOutput    *termenv.Output
	ColorEnabled bool
}

func NewUI(out, err io.Writer, mode ColorMode) *UI {
	output := termenv.NewOutput(out)
	errOutput := termenv.NewOutput(err)

	return &UI{
		Out:          out,
		Err:          err,
		Output:       output,
		ErrOutput:    errOutput,
		ColorEnabled: shouldEnableColor(output, mode),
	}
}

func shouldEnableColor(output *termenv.Output, mode ColorMode) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return output.ColorProfile() != termenv.Ascii
	}
}

func (u *UI) Errorf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, "1", format, args...))
}

func (u *UI) Warnf(format string, args ...any) {
	fmt.Fprintln(u.Err, u.paint(u.ErrOutput, "3", format, args...))
}

func (u *UI) Infof(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, "4", format, args...))
}

func (u *UI) Successf(format string, args ...any) {
	fmt.Fprintln(u.Out, u.paint(u.Output, "2", format, args...))
}

// Printf writes unstyled text to Out.
func (u *UI) Printf(format string, args ...any) {
	fmt.Fprintf(u.Out, format, args...)
}

func (u *UI) paint(output *termenv.Output, color, format string, args ...any) string {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	if u.ColorEnabled {
		msg = output.String(msg).Foreground(output.Color(color)).String()
	}
	return msg
}

// Bold renders text in bold on Out when color is enabled.
func (u *UI) Bold(text string) string {
	if !u.ColorEnabled {
		return text
	}
	return u.Output.String(text).Bold().String()
}

// Faint renders secondary text dimmed on Out when color is enabled.
func (u *UI) Faint(text string) string {
	if !u.ColorEnabled {
		return text
	}
	return u.Output.String(text).Faint().String()
}

func ColorizeLink(output *termenv.Output, enabled bool, text string) string {
	if !enabled || output == nil {
		return text
	}
	return output.String(text).Foreground(output.Color(LinkColor)).String()
}

func (u *UI) LinkText(text string) string {
	return ColorizeLink(u.Output, u.ColorEnabled, text)
}

func NormalizeColorMode(value string) ColorMode {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(ColorAlways):
		return ColorAlways
	case string(ColorNever):
		return ColorNever
	default:
		return ColorAuto
	}
}
