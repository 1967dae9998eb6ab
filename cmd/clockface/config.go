package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hubastard/clockface/engine/assets"
	"github.com/hubastard/clockface/engine/colors"
	"github.com/hubastard/clockface/engine/core"
	"github.com/hubastard/clockface/internal/clockface"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Command-line flags override file values.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`

	Shaders      string `yaml:"shaders"`
	WatchShaders bool   `yaml:"watch_shaders"`

	Culling   bool `yaml:"culling"`
	DepthTest bool `yaml:"depth_test"`
	Spin      bool `yaml:"spin"`

	DialSegments int       `yaml:"dial_segments"`
	ClearColor   []float32 `yaml:"clear_color"`
	DialColor    []float32 `yaml:"dial_color"`
	HandColor    []float32 `yaml:"hand_color"`
}

func DefaultConfig() Config {
	opts := clockface.DefaultOptions()
	return Config{
		Title:        opts.Title,
		Width:        1280,
		Height:       720,
		VSync:        true,
		Shaders:      assets.DefaultShaderDir,
		DepthTest:    true,
		DialSegments: opts.DialSegments,
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config path: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if cfg.Shaders, err = homedir.Expand(cfg.Shaders); err != nil {
		return cfg, fmt.Errorf("config shaders: %w", err)
	}
	return cfg, nil
}

// ParseConfig loads the file named by -config and applies the flags that were set.
func ParseConfig(args []string, output io.Writer) (Config, error) {
	def := DefaultConfig()
	fs := flag.NewFlagSet("clockface", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		path      = fs.String("config", "", "YAML config file")
		width     = fs.Int("width", def.Width, "window width")
		height    = fs.Int("height", def.Height, "window height")
		vsync     = fs.Bool("vsync", def.VSync, "sync to the display refresh")
		shaders   = fs.String("shaders", def.Shaders, "shader directory")
		watch     = fs.Bool("watch-shaders", def.WatchShaders, "rebuild shaders when they change on disk")
		culling   = fs.Bool("culling", def.Culling, "start with back-face culling on")
		depthTest = fs.Bool("depth-test", def.DepthTest, "start with depth testing on")
		spin      = fs.Bool("spin", def.Spin, "start with the shaft and hand spinning")
	)
	if err := fs.Parse(args); err != nil {
		return def, err
	}

	cfg, err := LoadConfig(*path)
	if err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "vsync":
			cfg.VSync = *vsync
		case "shaders":
			cfg.Shaders = *shaders
		case "watch-shaders":
			cfg.WatchShaders = *watch
		case "culling":
			cfg.Culling = *culling
		case "depth-test":
			cfg.DepthTest = *depthTest
		case "spin":
			cfg.Spin = *spin
		}
	})
	if cfg.Width < 1 || cfg.Height < 1 {
		return cfg, fmt.Errorf("config: window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func (c Config) Core() core.Config {
	return core.Config{
		Title:      c.Title,
		Width:      c.Width,
		Height:     c.Height,
		VSync:      c.VSync,
		ClearColor: [4]float32(c.clearColor()),
	}
}

func (c Config) clearColor() colors.Color {
	if col, err := colors.Parse(c.ClearColor); err == nil {
		return col
	}
	return clockface.DefaultOptions().ClearColor
}

// ClockOptions turns the config into driver options. Colors left empty keep their defaults.
func (c Config) ClockOptions() (clockface.Options, error) {
	opts := clockface.DefaultOptions()
	opts.Title = c.Title
	if c.DialSegments != 0 {
		opts.DialSegments = c.DialSegments
	}
	for _, col := range []struct {
		name string
		src  []float32
		dst  *colors.Color
	}{
		{"clear_color", c.ClearColor, &opts.ClearColor},
		{"dial_color", c.DialColor, &opts.DialColor},
		{"hand_color", c.HandColor, &opts.HandColor},
	} {
		if len(col.src) == 0 {
			continue
		}
		parsed, err := colors.Parse(col.src)
		if err != nil {
			return opts, fmt.Errorf("config %s: %w", col.name, err)
		}
		*col.dst = parsed
	}
	return opts, nil
}

func (c Config) RenderState() clockface.RenderState {
	return clockface.RenderState{Culling: c.Culling, DepthTest: c.DepthTest, Spin: c.Spin}
}
