package naming

import (
	"path/filepath"
	"testing"
)

func TestSVGOutputPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		dir   string
		want  string
	}{
		{"swc file", "/data/cells/neuron.swc", "/tmp/out", "/tmp/out/neuron.svg"},
		{"h5 file", "cells/pyramidal.h5", "render", filepath.Join("render", "pyramidal.svg")},
		{"no extension", "/data/cell", "/tmp/out", "/tmp/out/cell.svg"},
		{"dotted stem", "/data/cell.v2.swc", "/tmp/out", "/tmp/out/cell.v2.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SVGOutputPath(tt.input, tt.dir)
			if got != tt.want {
				t.Errorf("SVGOutputPath(%q, %q) = %q, want %q", tt.input, tt.dir, got, tt.want)
			}
		})
	}
}

func TestResolver_NoCollision(t *testing.T) {
	r := NewResolver()
	got := r.Resolve("/a/neuron.swc", "/out/neuron.svg")
	if got != "/out/neuron.svg" {
		t.Errorf("Resolve = %q, want requested path unchanged", got)
	}
}

func TestResolver_SameInputKeepsPath(t *testing.T) {
	r := NewResolver()
	first := r.Resolve("/a/neuron.swc", "/out/neuron.svg")
	second := r.Resolve("/a/neuron.swc", "/out/neuron.svg")
	if first != second {
		t.Errorf("same input resolved differently: %q then %q", first, second)
	}
}

func TestResolver_Suffixes(t *testing.T) {
	r := NewResolver()
	r.Resolve("/a/neuron.swc", "/out/neuron.svg")

	second := r.Resolve("/b/neuron.swc", "/out/neuron.svg")
	if second != "/out/neuron (2).svg" {
		t.Errorf("second claimant = %q, want (2) suffix", second)
	}

	third := r.Resolve("/c/neuron.swc", "/out/neuron.svg")
	if third != "/out/neuron (3).svg" {
		t.Errorf("third claimant = %q, want (3) suffix", third)
	}

	// A repeat from the second input stays stable.
	again := r.Resolve("/b/neuron.swc", "/out/neuron.svg")
	if again != second {
		t.Errorf("repeat resolve = %q, want %q", again, second)
	}
}
