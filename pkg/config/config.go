// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 🎛️ Config holds every knob for a batch pixelation run
type Config struct {
	Factor            int      `yaml:"factor"`             // Downscale divisor applied to both dimensions
	Scaling           int      `yaml:"scaling"`            // Upscale multiplier applied to the pixelated result
	Colors            int      `yaml:"colors"`             // Target palette size (2-32)
	Dither            bool     `yaml:"dither"`             // Enable Floyd-Steinberg dithering
	Alpha             float64  `yaml:"alpha"`              // Visibility threshold for alpha-channel pixels
	RegeneratePalette bool     `yaml:"regenerate_palette"` // Fit a fresh palette per image
	Seed              int64    `yaml:"seed"`               // Random seed for palette refinement
	Input             string   `yaml:"input"`              // File or directory to process
	Output            string   `yaml:"output"`             // Directory for pixelated results
	Warnings          bool     `yaml:"warnings"`           // Display non-critical conversion warnings
	Exclude           []string `yaml:"exclude"`            // Glob patterns excluded during resolution
}

// 🏭 Defaults returns a Config with the documented default values
func Defaults() *Config {
	return &Config{
		Factor:            5,
		Scaling:           5,
		Colors:            8,
		Dither:            true,
		Alpha:             0.6,
		RegeneratePalette: true,
		Seed:              0,
		Input:             ".",
		Output:            filepath.Join(".", "pyxelated"),
		Warnings:          true,
	}
}

// 🔍 Validate checks that the configuration is internally consistent
func (c *Config) Validate() error {
	if c.Factor < 1 {
		return errors.Errorf("factor must be at least 1, got %d", c.Factor)
	}
	if c.Scaling < 1 {
		return errors.Errorf("scaling must be at least 1, got %d", c.Scaling)
	}
	if c.Colors < 2 || c.Colors > 32 {
		return errors.Errorf("colors must be between 2 and 32, got %d", c.Colors)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return errors.Errorf("alpha threshold must be between 0 and 1, got %g", c.Alpha)
	}
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.Output == "" {
		return errors.New("output path is required")
	}
	return nil
}
