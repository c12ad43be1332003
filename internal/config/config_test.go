package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/cells", "/data/cells"},
		{"single trailing slash", "/data/cells/", "/data/cells"},
		{"multiple trailing slashes", "/data/cells///", "/data/cells"},
		{"root path", "/", "/"},
		{"relative path", "cells", "cells"},
		{"relative with slash", "cells/", "cells"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "/data/cells"
	return cfg
}

func TestValidate_Format(t *testing.T) {
	tests := []struct {
		name    string
		format  OutputFormat
		wantErr bool
	}{
		{"yaml is valid", FormatYAML, false},
		{"json is valid", FormatJSON, false},
		{"empty is invalid", "", true},
		{"xml is invalid", "xml", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Format = tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_FlatMethod(t *testing.T) {
	tests := []struct {
		name    string
		method  FlatMethod
		wantErr bool
	}{
		{"tolerance is valid", FlatTolerance, false},
		{"ratio is valid", FlatRatio, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "pca", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.FlatMethod = tt.method
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Tolerances(t *testing.T) {
	cfg := validConfig()
	cfg.FlatTol = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a zero flat tolerance")
	}

	cfg = validConfig()
	cfg.MonoTol = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject a negative monotonicity tolerance")
	}

	cfg = validConfig()
	cfg.MonoTol = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error for zero mono tolerance: %v", err)
	}
}

func TestValidate_ModeExclusion(t *testing.T) {
	cfg := validConfig()
	cfg.CheckOnly = true
	cfg.AnalyzeOnly = true
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject --check with --analyze")
	}

	cfg = validConfig()
	cfg.CheckOnly = true
	cfg.DendrogramDir = "/tmp/dendro"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should reject --dendrogram with --check")
	}
}

func TestValidate_RequiresInputPath(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when the input path is empty")
	}

	cfg.InputPath = "/data/cells"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MORPHSTATS_FORMAT", "json")
	t.Setenv("MORPHSTATS_COLOR", "never")
	t.Setenv("MORPHSTATS_LOG", "/tmp/morphstats.log")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.LogFile != "/tmp/morphstats.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestApplyEnv_InvalidValue(t *testing.T) {
	t.Setenv("MORPHSTATS_FORMAT", "csv")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv should fail on an invalid MORPHSTATS_FORMAT")
	}
}

func TestExpandVerbosity(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"stacked double", []string{"-vv", "cells"}, []string{"-v", "-v", "cells"}},
		{"stacked triple", []string{"-vvv"}, []string{"-v", "-v", "-v"}},
		{"single untouched", []string{"-v", "cells"}, []string{"-v", "cells"}},
		{"explicit untouched", []string{"--verbosity", "2"}, []string{"--verbosity", "2"}},
		{"long flag untouched", []string{"--vv"}, []string{"--vv"}},
		{"after terminator untouched", []string{"--", "-vv"}, []string{"--", "-vv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandVerbosity(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expandVerbosity(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyEnv_MalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	// No '=' separator: godotenv cannot parse this line.
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MORPHSTATS_FORMAT\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv should fail on a malformed .env")
	}
}

func TestApplyEnv_MissingDotEnv(t *testing.T) {
	chdir(t, t.TempDir())

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Errorf("ApplyEnv should ignore a missing .env, got %v", err)
	}
}

// chdir is a stand-in for t.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
