// Copyright 2023 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS-IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the TOML configuration shared by the command line
// tools. Every value has a default, so a missing file is not an error.
package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the parsed TOML file.
type Config struct {
	Log    LogConfig
	CAD    CADConfig    `toml:"cad"`
	Poly   PolyConfig   `toml:"poly"`
	Msh    MshConfig    `toml:"msh"`
	Runoff RunoffConfig `toml:"runoff"`
}

// LogConfig selects where log output goes. An empty Logfile means stderr.
type LogConfig struct {
	Logfile string
	MaxSize int `toml:"max_log_size"` // megabytes
	MaxAge  int `toml:"max_log_age"`  // days
	Level   string
}

// CADConfig describes the CAD exports read by cad2poly.
type CADConfig struct {
	// Encoding of CSV exports, "utf-8" or "gbk".
	Encoding string

	StartX string `toml:"start_x"`
	StartY string `toml:"start_y"`
	EndX   string `toml:"end_x"`
	EndY   string `toml:"end_y"`

	// Layers restricts DXF input to the named layers; empty means all.
	Layers []string
}

// PolyConfig controls .poly generation.
type PolyConfig struct {
	BoundaryMarkers int `toml:"boundary_markers"`
	MaxHoleSamples  int `toml:"max_hole_samples"`

	// Seed for hole sampling; 0 seeds from the clock.
	Seed int64
}

// ZoneConfig names one zone of a .msh file.
type ZoneConfig struct {
	ID   int
	Type string
	Name string
}

// MshConfig controls the zone layout of .msh output.
type MshConfig struct {
	Title string

	// NodeZones holds the node zone ids for outer, inner and interior nodes.
	NodeZones []int `toml:"node_zones"`

	Outer    ZoneConfig
	Inner    ZoneConfig
	Interior ZoneConfig
	Cells    ZoneConfig
}

// RunoffConfig maps landcover classes to runoff coefficients.
type RunoffConfig struct {
	Default float64
	Classes map[string]float64
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{MaxSize: 100, MaxAge: 30, Level: "info"},
		CAD: CADConfig{
			Encoding: "utf-8",
			StartX:   "端点 X",
			StartY:   "端点 Y",
			EndX:     "起点 X",
			EndY:     "起点 Y",
		},
		Poly: PolyConfig{BoundaryMarkers: 1, MaxHoleSamples: 10000},
		Msh: MshConfig{
			Title:     "poly2msh",
			NodeZones: []int{1, 6, 7},
			Outer:     ZoneConfig{ID: 3, Type: "wall", Name: "outer"},
			Inner:     ZoneConfig{ID: 4, Type: "wall", Name: "inner"},
			Interior:  ZoneConfig{ID: 5, Type: "interior", Name: "int_fluid"},
			Cells:     ZoneConfig{ID: 2, Type: "fluid", Name: "fluid"},
		},
		Runoff: RunoffConfig{
			Default: 1,
			Classes: map[string]float64{
				"10": 0.4,
				"20": 0.2,
				"30": 0.2,
				"50": 0.2,
				"60": 1,
				"90": 0.6,
			},
		},
	}
}

// Load reads filename over the defaults. An empty filename returns the
// defaults unchanged. Unknown keys are an error.
func Load(filename string) (*Config, error) {
	c := Default()
	if filename == "" {
		return c, nil
	}
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode TOML config %q", filename)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.Errorf("config %q: unknown keys %s", filename, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %q", filename)
	}
	return c, nil
}

// Validate checks values that the decoder cannot.
func (c *Config) Validate() error {
	switch strings.ToLower(c.CAD.Encoding) {
	case "utf-8", "utf8", "gbk":
	default:
		return errors.Errorf("cad.encoding: unsupported encoding %q", c.CAD.Encoding)
	}
	if c.Poly.BoundaryMarkers < 0 {
		return errors.Errorf("poly.boundary_markers: must not be negative, got %d", c.Poly.BoundaryMarkers)
	}
	if c.Poly.MaxHoleSamples < 0 {
		return errors.Errorf("poly.max_hole_samples: must not be negative, got %d", c.Poly.MaxHoleSamples)
	}
	if len(c.Msh.NodeZones) != 3 {
		return errors.Errorf("msh.node_zones: want 3 zone ids, got %d", len(c.Msh.NodeZones))
	}
	if _, err := c.Runoff.Table(); err != nil {
		return err
	}
	return nil
}

// Table converts the class keys to integers.
func (r RunoffConfig) Table() (map[int]float64, error) {
	out := make(map[int]float64, len(r.Classes))
	for k, v := range r.Classes {
		class, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.Errorf("runoff.classes: class %q is not an integer", k)
		}
		out[class] = v
	}
	return out, nil
}
