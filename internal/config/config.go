// Package config loads flatten run settings from a YAML file and command
// line overrides.
package config

import (
	"github.com/shapestone/shape-x12/internal/report"
)

// Config is a validated flatten run configuration.
type Config struct {
	InputDir       string
	Pattern        string
	Output         string
	Profile        report.Profile
	OnBadFile      report.BadFileMode
	MaxSegmentSize int
	LogDir         string
	Debug          bool
}

// Overrides holds command line values. Empty strings and nil pointers leave
// the file value in place.
type Overrides struct {
	InputDir       string
	Pattern        string
	Output         string
	Profile        string
	OnBadFile      string
	MaxSegmentSize *int
	LogDir         string
	Debug          bool
}

// ReportOptions converts the configuration into report run options.
func (c Config) ReportOptions(runID string) report.Options {
	return report.Options{
		RunID:          runID,
		InputDir:       c.InputDir,
		Pattern:        c.Pattern,
		Output:         c.Output,
		Profile:        c.Profile,
		OnBadFile:      c.OnBadFile,
		MaxSegmentSize: c.MaxSegmentSize,
	}
}
