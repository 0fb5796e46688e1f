// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package presets provides the built-in model and platform tags. The
// catalogue is embedded in the binary and can be replaced by a YAML file
// of the same shape.
package presets

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"promptcard/internal/models"
)

//go:embed presets.yaml
var builtin []byte

// Catalogue is the list of preset tags shipped with the application.
type Catalogue struct {
	Models    []string          `yaml:"models"`
	Platforms []models.Platform `yaml:"platforms"`
}

// Default returns the embedded catalogue.
func Default() *Catalogue {
	c, err := Parse(builtin)
	if err != nil {
		// The embedded file is part of the build.
		panic(fmt.Sprintf("presets: embedded catalogue: %v", err))
	}
	return c
}

// Load reads a catalogue from path. An empty path returns the embedded one.
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("presets: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalogue, dropping blank and duplicate entries.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("presets: parse: %w", err)
	}

	seen := make(map[string]bool)
	modelsOut := make([]string, 0, len(c.Models))
	for _, m := range c.Models {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		modelsOut = append(modelsOut, m)
	}

	seen = make(map[string]bool)
	platformsOut := make([]models.Platform, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		platformsOut = append(platformsOut, p)
	}

	return &Catalogue{Models: modelsOut, Platforms: platformsOut}, nil
}

// HasModel reports whether name is a preset model tag.
func (c *Catalogue) HasModel(name string) bool {
	for _, m := range c.Models {
		if m == name {
			return true
		}
	}
	return false
}

// HasPlatform reports whether name is a preset platform tag.
func (c *Catalogue) HasPlatform(name string) bool {
	for _, p := range c.Platforms {
		if p.Name == name {
			return true
		}
	}
	return false
}
