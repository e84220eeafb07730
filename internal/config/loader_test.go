package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shapestone/shape-x12/internal/report"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "flatten.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputDir != "/data/sftp/working" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.Profile.Name != report.ProfileTA1.Name {
		t.Errorf("Profile = %q, want TA1", cfg.Profile.Name)
	}
	if cfg.OnBadFile != report.BadFileSkip {
		t.Errorf("OnBadFile = %s", cfg.OnBadFile)
	}
	if cfg.MaxSegmentSize != 4096 {
		t.Errorf("MaxSegmentSize = %d", cfg.MaxSegmentSize)
	}
	if cfg.LogDir != "/var/log/x12flat" || !cfg.Debug {
		t.Errorf("log = %q, %v", cfg.LogDir, cfg.Debug)
	}
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "empty.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Profile.Name != "837" || cfg.Pattern != "KYH*.837" || cfg.InputDir != "." {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.Output != filepath.Join(".", "x12flat_837.txt") {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		kind  ErrorKind
		field string
	}{
		{"missing file", "missing.yaml", KindNotFound, ""},
		{"invalid profile", "invalid_profile.yaml", KindInvalidConfig, "profile"},
		{"unknown field", "unknown_field.yaml", KindInvalidConfig, "delimiter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("testdata", tt.file)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !IsKind(err, tt.kind) {
				t.Errorf("expected kind %s, got %v", tt.kind, err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("expected path in error, got %v", err)
			}
			if tt.field != "" && !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected %q in error, got %v", tt.field, err)
			}
		})
	}
}

func TestResolve_OverridesWin(t *testing.T) {
	size := 0
	cfg, err := Resolve(filepath.Join("testdata", "flatten.yaml"), Overrides{
		InputDir:       "/tmp/in",
		Profile:        "837",
		OnBadFile:      "abort",
		MaxSegmentSize: &size,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.InputDir != "/tmp/in" || cfg.Profile.Name != "837" || cfg.OnBadFile != report.BadFileAbort {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.MaxSegmentSize != 0 {
		t.Errorf("MaxSegmentSize = %d, want 0", cfg.MaxSegmentSize)
	}
	// Pattern and output come from the file.
	if cfg.Pattern != "KYH*.TA1" || cfg.Output != "/data/reports/ta1_flat.txt" {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestResolve_NoFile(t *testing.T) {
	cfg, err := Resolve("", Overrides{InputDir: "in", Profile: "TA1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Pattern != "KYH*.TA1" {
		t.Errorf("Pattern = %q", cfg.Pattern)
	}
	if cfg.Output != filepath.Join("in", "x12flat_ta1.txt") {
		t.Errorf("Output = %q", cfg.Output)
	}

	opts := cfg.ReportOptions("run-7")
	if opts.RunID != "run-7" || opts.Profile.Name != "TA1" || opts.InputDir != "in" {
		t.Errorf("ReportOptions() = %+v", opts)
	}
}

func TestOpError(t *testing.T) {
	root := errors.New("root")
	err := &OpError{Op: "config.load", Kind: KindNotFound, Path: "x.yaml", Err: root}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}
	if got := err.Error(); got != "config.load: not_found (path=x.yaml): root" {
		t.Errorf("Error() = %q", got)
	}
	if IsKind(root, KindNotFound) {
		t.Error("IsKind matched a plain error")
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" || nilErr.Unwrap() != nil {
		t.Error("nil OpError not handled")
	}
}
