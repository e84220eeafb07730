package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shapestone/shape-x12/internal/report"
)

// MapConfig validates a decoded file and fills defaults.
//
// Defaults: the current directory as input, the profile's file pattern, the
// 837 profile, abort on bad files, and an output named after the profile in
// the input directory.
func MapConfig(path string, yc YAMLConfig) (Config, error) {
	profileName := strings.TrimSpace(yc.Profile)
	if profileName == "" {
		profileName = report.Profile837.Name
	}
	profile, err := report.LookupProfile(profileName)
	if err != nil {
		return Config{}, invalidField(path, "profile", err.Error())
	}

	mode, err := report.ParseBadFileMode(yc.OnBadFile)
	if err != nil {
		return Config{}, invalidField(path, "on_bad_file", err.Error())
	}

	cfg := Config{
		InputDir:  strings.TrimSpace(yc.InputDir),
		Pattern:   strings.TrimSpace(yc.Pattern),
		Output:    strings.TrimSpace(yc.Output),
		Profile:   profile,
		OnBadFile: mode,
		LogDir:    strings.TrimSpace(yc.Log.Dir),
		Debug:     yc.Log.Debug,
	}

	if yc.MaxSegmentSize != nil {
		if *yc.MaxSegmentSize < 0 {
			return Config{}, invalidField(path, "max_segment_size", "must not be negative")
		}
		cfg.MaxSegmentSize = *yc.MaxSegmentSize
	}

	if cfg.InputDir == "" {
		cfg.InputDir = "."
	}
	if cfg.Pattern == "" {
		cfg.Pattern = profile.Pattern
	}
	if _, err := filepath.Match(cfg.Pattern, ""); err != nil {
		return Config{}, invalidField(path, "pattern", err.Error())
	}
	if cfg.Output == "" {
		cfg.Output = filepath.Join(cfg.InputDir, "x12flat_"+strings.ToLower(profile.Name)+".txt")
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &OpError{
		Op:   "config.map",
		Kind: KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, ErrInvalidConfig),
	}
}
