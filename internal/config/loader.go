package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file and maps it without overrides.
func Load(path string) (Config, error) {
	return Resolve(path, Overrides{})
}

// Resolve builds a Config from an optional YAML file and command line
// overrides. Overrides win over file values; defaults fill what is left.
func Resolve(path string, o Overrides) (Config, error) {
	var dto YAMLConfig
	if path != "" {
		var err error
		dto, err = readFile(path)
		if err != nil {
			return Config{}, err
		}
	}
	applyOverrides(&dto, o)
	return MapConfig(path, dto)
}

func readFile(path string) (YAMLConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return YAMLConfig{}, &OpError{
			Op:   "config.load",
			Kind: KindNotFound,
			Path: path,
			Err:  errors.Join(ErrNotFound, err),
		}
	}

	var dto YAMLConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		return YAMLConfig{}, &OpError{
			Op:   "config.load",
			Kind: KindInvalidConfig,
			Path: path,
			Err:  errors.Join(ErrInvalidConfig, err),
		}
	}
	return dto, nil
}

func applyOverrides(dto *YAMLConfig, o Overrides) {
	if o.InputDir != "" {
		dto.InputDir = o.InputDir
	}
	if o.Pattern != "" {
		dto.Pattern = o.Pattern
	}
	if o.Output != "" {
		dto.Output = o.Output
	}
	if o.Profile != "" {
		dto.Profile = o.Profile
	}
	if o.OnBadFile != "" {
		dto.OnBadFile = o.OnBadFile
	}
	if o.MaxSegmentSize != nil {
		dto.MaxSegmentSize = o.MaxSegmentSize
	}
	if o.LogDir != "" {
		dto.Log.Dir = o.LogDir
	}
	if o.Debug {
		dto.Log.Debug = true
	}
}
