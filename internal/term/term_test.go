package term

import (
	"testing"

	"github.com/neurobench/morphstats/internal/config"
)

func TestConfigure_Always(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	if !Enabled() {
		t.Fatal("Enabled() = false after ColorAlways")
	}
	if Red == "" || NC == "" {
		t.Error("color variables not set after ColorAlways")
	}
}

func TestConfigure_Never(t *testing.T) {
	Configure(config.ColorAlways)
	Configure(config.ColorNever)

	if Enabled() {
		t.Fatal("Enabled() = true after ColorNever")
	}
	for _, c := range []string{Red, Green, Yellow, Orange, Blue, Cyan, Magenta, NC} {
		if c != "" {
			t.Errorf("color variable %q not cleared after ColorNever", c)
		}
	}
}

func TestResolveAuto_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if resolve(config.ColorAuto) {
		t.Error("auto mode enabled colors despite NO_COLOR")
	}
}

func TestResolveAuto_DumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if resolve(config.ColorAuto) {
		t.Error("auto mode enabled colors on TERM=dumb")
	}
}
