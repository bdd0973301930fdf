// Package terminal decides whether the transcoder is talking to a person, in
// which case prompts are shown before each input object.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"BUILDKITE",
	"JENKINS_URL",
}

// DetectorOptions contains options for controlling interactive detection
type DetectorOptions struct {
	ForceInteractive    bool
	ForceNonInteractive bool
}

// InteractiveDetector reports whether prompts make sense.
type InteractiveDetector interface {
	IsInteractive() bool
	IsTerminal() bool
	IsCIEnvironment() bool
}

// DefaultInteractiveDetector implements InteractiveDetector for the process's
// standard streams.
type DefaultInteractiveDetector struct {
	options DetectorOptions
	isTerm  func(fd int) bool
	getenv  func(string) string
}

func NewInteractiveDetector(options DetectorOptions) *DefaultInteractiveDetector {
	return &DefaultInteractiveDetector{
		options: options,
		isTerm:  term.IsTerminal,
		getenv:  os.Getenv,
	}
}

// IsInteractive applies, in order: the force options, CI detection, and
// terminal detection.
func (d *DefaultInteractiveDetector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if d.IsCIEnvironment() {
		return false
	}
	return d.IsTerminal()
}

// IsTerminal checks that input comes from, and prompts go to, a terminal.
func (d *DefaultInteractiveDetector) IsTerminal() bool {
	return d.isTerm(int(os.Stdin.Fd())) && d.isTerm(int(os.Stderr.Fd()))
}

func (d *DefaultInteractiveDetector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if value := d.getenv(envVar); value != "" {
			if envVar == "CI" {
				return isCITruthy(value)
			}
			return true
		}
	}
	return false
}

// isCITruthy treats CI=false, CI=0 and CI=no as not CI.
func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
