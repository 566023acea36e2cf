// Package config holds the settings shared by the blockfall front ends.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"blockfall/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config represents the command-line and file parameters for the application.
type Config struct {
	Sim         string  `yaml:"sim"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	EmptyChance float64 `yaml:"empty_chance"`
	Seed        int64   `yaml:"seed"`
	TPS         int     `yaml:"tps"`
	BlockSize   int     `yaml:"block_size"`
	Log         string  `yaml:"log"`

	File string `yaml:"-"`
}

// New returns a Config populated with defaults matching the original
// prototype: an 8x10 board, half empty, 40px blocks at 60 TPS.
func New() *Config {
	return &Config{
		Sim:         "blockfall",
		Width:       8,
		Height:      10,
		EmptyChance: 0.5,
		Seed:        1337,
		TPS:         60,
		BlockSize:   40,
		Log:         "dev",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Width, "width", c.Width, "board width in columns")
	fs.IntVar(&c.Height, "height", c.Height, "board height in rows")
	fs.Float64Var(&c.EmptyChance, "empty", c.EmptyChance, "probability that a cell starts empty")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for board initialisation")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.BlockSize, "block", c.BlockSize, "block size in pixels")
	fs.StringVar(&c.Log, "log", c.Log, "log mode: dev, prod or silent")
	fs.StringVar(&c.File, "config", c.File, "optional YAML config file")
}

// Parse binds c to fs, parses args and, when -config is given, loads the file
// underneath any flags set explicitly on the command line.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	c := New()
	c.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.File != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		if err := c.LoadFile(c.File); err != nil {
			return nil, err
		}
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return nil, fmt.Errorf("reapply -%s: %w", name, err)
			}
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile overlays the keys present in the YAML file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	return c.Unmarshal(data)
}

// Unmarshal overlays the keys present in a YAML document.
func (c *Config) Unmarshal(data []byte) error {
	file := c.File
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	c.File = file
	return nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("%w: width %d must be positive", ErrInvalid, c.Width)
	case c.Height <= 0:
		return fmt.Errorf("%w: height %d must be positive", ErrInvalid, c.Height)
	case c.EmptyChance < 0 || c.EmptyChance > 1:
		return fmt.Errorf("%w: empty chance %v outside [0,1]", ErrInvalid, c.EmptyChance)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalid, c.TPS)
	case c.BlockSize <= 0:
		return fmt.Errorf("%w: block size %d must be positive", ErrInvalid, c.BlockSize)
	}
	if _, err := logging.ParseMode(c.Log); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// LogMode returns the parsed log mode, falling back to dev.
func (c *Config) LogMode() logging.Mode {
	m, _ := logging.ParseMode(c.Log)
	return m
}

// SimMap renders the board settings in the key/value form sim factories read.
func (c *Config) SimMap() map[string]string {
	return map[string]string{
		"w":            strconv.Itoa(c.Width),
		"h":            strconv.Itoa(c.Height),
		"empty_chance": strconv.FormatFloat(c.EmptyChance, 'f', -1, 64),
		"seed":         strconv.FormatInt(c.Seed, 10),
	}
}
