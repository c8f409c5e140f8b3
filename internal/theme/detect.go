package theme

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ErrDetectTimeout is returned when the terminal does not answer the
// background colour query in time.
var ErrDetectTimeout = errors.New("terminal background detection timed out")

// hasDarkBackground is swapped in tests.
var hasDarkBackground = func() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

// DetectBackground asks the terminal for its background colour and returns
// the default dark or light theme name.
func DetectBackground(timeout time.Duration) (string, error) {
	query := hasDarkBackground
	result := make(chan bool, 1)
	go func() {
		result <- query()
	}()

	select {
	case dark := <-result:
		if dark {
			return DefaultDark(), nil
		}
		return DefaultLight(), nil
	case <-time.After(timeout):
		return "", ErrDetectTimeout
	}
}

// InitColorProfile forces true colour output when the environment asks for
// it, so colours survive in pipes and CI.
func InitColorProfile() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}
