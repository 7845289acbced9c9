// SPDX-License-Identifier: Unlicense OR MIT

package glsafe

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"gioui.org/glsafe/format"
)

// Config holds per-device policy.
type Config struct {
	// StrictAttributes is the default mode of vertex array builders. A
	// strict builder rejects assigning an attribute slot twice; otherwise
	// the later assignment replaces the earlier one.
	StrictAttributes bool `toml:"strict_attributes"`
	// MaxVertexAttribs and MaxTextureUnits clamp the limits reported by the
	// driver. Zero selects the default ceiling.
	MaxVertexAttribs int `toml:"max_vertex_attribs"`
	MaxTextureUnits  int `toml:"max_texture_units"`
	// GLES selects OpenGL ES shader sources. It is also enabled when the
	// driver reports an OpenGL ES version.
	GLES bool `toml:"gles"`
	// Formats overrides the format capability table.
	Formats format.Table `toml:"-"`
}

const (
	defaultMaxVertexAttribs = 32
	defaultMaxTextureUnits  = 32
)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		MaxVertexAttribs: defaultMaxVertexAttribs,
		MaxTextureUnits:  defaultMaxTextureUnits,
		Formats:          format.Default,
	}
}

// ParseConfig decodes TOML data on top of DefaultConfig.
func ParseConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("glsafe: config: %w", err)
	}
	return cfg, cfg.validate()
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("glsafe: config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.MaxVertexAttribs != 0 && c.MaxVertexAttribs < MinVertexAttribs {
		return fmt.Errorf("glsafe: config: max_vertex_attribs %d below %d", c.MaxVertexAttribs, MinVertexAttribs)
	}
	if c.MaxTextureUnits != 0 && c.MaxTextureUnits < MinTextureUnits {
		return fmt.Errorf("glsafe: config: max_texture_units %d below %d", c.MaxTextureUnits, MinTextureUnits)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.MaxVertexAttribs == 0 {
		c.MaxVertexAttribs = defaultMaxVertexAttribs
	}
	if c.MaxTextureUnits == 0 {
		c.MaxTextureUnits = defaultMaxTextureUnits
	}
	if c.Formats == nil {
		c.Formats = format.Default
	}
	return c
}
