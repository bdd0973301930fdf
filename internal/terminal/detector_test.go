package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDetector(opts DetectorOptions, tty bool, env map[string]string) *DefaultInteractiveDetector {
	d := NewInteractiveDetector(opts)
	d.isTerm = func(int) bool { return tty }
	d.getenv = func(k string) string { return env[k] }
	return d
}

func TestIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		opts DetectorOptions
		tty  bool
		env  map[string]string
		want bool
	}{
		{name: "terminal", tty: true, want: true},
		{name: "pipe", tty: false, want: false},
		{name: "force interactive on pipe", opts: DetectorOptions{ForceInteractive: true}, want: true},
		{name: "force non-interactive on terminal", opts: DetectorOptions{ForceNonInteractive: true}, tty: true, want: false},
		{name: "CI on terminal", tty: true, env: map[string]string{"CI": "true"}, want: false},
		{name: "CI=false on terminal", tty: true, env: map[string]string{"CI": "false"}, want: true},
		{name: "GITHUB_ACTIONS", tty: true, env: map[string]string{"GITHUB_ACTIONS": "1"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(tt.opts, tt.tty, tt.env)
			assert.Equal(t, tt.want, d.IsInteractive())
		})
	}
}

func TestIsCITruthy(t *testing.T) {
	for _, v := range []string{"false", "0", "No", " FALSE "} {
		assert.False(t, isCITruthy(v), v)
	}
	for _, v := range []string{"true", "1", "yes"} {
		assert.True(t, isCITruthy(v), v)
	}
}
