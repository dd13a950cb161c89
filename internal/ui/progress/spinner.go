package progress

import (
	"strings"

	"charm.land/bubbles/v2/spinner"
)

var spinnerFrames = func() []string {
	frames := make([]string, len(spinner.Dot.Frames))
	for i, f := range spinner.Dot.Frames {
		frames[i] = strings.TrimSpace(f)
	}
	return frames
}()

// SpinnerFrame returns the animation frame for the given step.
func SpinnerFrame(step int) string {
	if len(spinnerFrames) == 0 {
		return ""
	}
	if step < 0 {
		step = -step
	}
	return spinnerFrames[step%len(spinnerFrames)]
}
