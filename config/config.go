// seehuhn.de/go/whiteboard - an interactive freehand whiteboard engine
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the configuration of the whiteboard daemon.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"seehuhn.de/go/whiteboard/element"
)

// Config is the daemon configuration.  The TOML keys are given in the
// struct tags.
type Config struct {
	Listen   string `toml:"listen"`
	Database string `toml:"database"`
	LogLevel string `toml:"log_level"`

	Canvas  Canvas  `toml:"canvas"`
	Pen     Pen     `toml:"pen"`
	History History `toml:"history"`
}

// Canvas is the size of the drawing surface in CSS pixels.
type Canvas struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	DPR    float64 `toml:"dpr"`
}

// Pen holds the stroke defaults of a new board.
type Pen struct {
	LineWidth   float64 `toml:"line_width"`
	StrokeColor string  `toml:"stroke_color"`
}

type History struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration which TOML decodes from strings like "300ms".
type Duration struct {
	time.Duration
}

// UnmarshalText is the method called by TOML when decoding a value.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration for TOML.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used for keys missing from the file.
func Default() *Config {
	return &Config{
		Listen:   ":8080",
		Database: "data/whiteboard.db",
		LogLevel: "info",
		Canvas: Canvas{
			Width:  1200,
			Height: 800,
			DPR:    1,
		},
		Pen: Pen{
			LineWidth:   element.DefaultStyle.LineWidth,
			StrokeColor: element.DefaultStyle.StrokeColor,
		},
		History: History{
			Debounce: Duration{300 * time.Millisecond},
		},
	}
}

// Style returns the pen defaults as an element style.
func (c *Config) Style() element.Style {
	return element.Style{LineWidth: c.Pen.LineWidth, StrokeColor: c.Pen.StrokeColor}
}

// LoadFile reads the configuration file fileName.  It is an error if the
// file contains keys which are not part of the configuration.
func LoadFile(fileName string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(fileName, c)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", fileName)
	}
	if err := finish(c, md); err != nil {
		return nil, errors.Wrap(err, fileName)
	}
	return c, nil
}

// Parse is like LoadFile, but reads the configuration from a string.
func Parse(text string) (*Config, error) {
	c := Default()
	md, err := toml.Decode(text, c)
	if err != nil {
		return nil, errors.Wrap(err, "parse configuration")
	}
	if err := finish(c, md); err != nil {
		return nil, err
	}
	return c, nil
}

func finish(c *Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("undecoded fields in configuration: %v", undecoded)
	}
	return c.Validate()
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return errors.Errorf("invalid canvas size %gx%g", c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.DPR <= 0:
		return errors.Errorf("invalid device pixel ratio %g", c.Canvas.DPR)
	case c.Pen.LineWidth <= 0:
		return errors.Errorf("invalid line width %g", c.Pen.LineWidth)
	case c.History.Debounce.Duration < 0:
		return errors.Errorf("negative history debounce %s", c.History.Debounce)
	}
	return nil
}
