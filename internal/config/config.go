package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/majo33/atom/internal/core/resources"
)

var (
	ErrUnknownFormat = errors.New("unknown config format")
	ErrInvalid       = errors.New("invalid config")
)

type Config struct {
	Resources ResourcesConfig `toml:"resources" yaml:"resources"`
	Watch     WatchConfig     `toml:"watch" yaml:"watch"`
	DevServer DevServerConfig `toml:"devserver" yaml:"devserver"`
	World     WorldConfig     `toml:"world" yaml:"world"`
	Logging   LoggingConfig   `toml:"logging" yaml:"logging"`
}

type ResourcesConfig struct {
	Root        string `toml:"root" yaml:"root"`
	Images      string `toml:"images" yaml:"images"`
	Shaders     string `toml:"shaders" yaml:"shaders"`
	Materials   string `toml:"materials" yaml:"materials"`
	MaterialExt string `toml:"material_ext" yaml:"material_ext"` // "json" or "yaml"
	Meshes      string `toml:"meshes" yaml:"meshes"`
	Sounds      string `toml:"sounds" yaml:"sounds"`
	Music       string `toml:"music" yaml:"music"`
	Scripts     string `toml:"scripts" yaml:"scripts"`
}

// Paths converts the directory layout for the resource service.
func (r ResourcesConfig) Paths() resources.Paths {
	return resources.Paths{
		Images:      r.Images,
		Shaders:     r.Shaders,
		Materials:   r.Materials,
		MaterialExt: r.MaterialExt,
		Meshes:      r.Meshes,
		Sounds:      r.Sounds,
		Music:       r.Music,
		Scripts:     r.Scripts,
	}
}

type WatchConfig struct {
	Enabled  bool          `toml:"enabled" yaml:"enabled"`
	Interval time.Duration `toml:"interval" yaml:"interval"`
}

type DevServerConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Address string `toml:"address" yaml:"address"`
}

type WorldConfig struct {
	TickRate time.Duration `toml:"tick_rate" yaml:"tick_rate"`
	Scene    string        `toml:"scene" yaml:"scene"` // relative to the resource root
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// Load reads a .toml, .yaml or .yml file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the format named by ext (with or without the dot).
func Decode(data []byte, ext string) (*Config, error) {
	cfg := Default()
	var err error
	switch ext {
	case ".toml", "toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "yaml", "yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	p := resources.DefaultPaths()
	return &Config{
		Resources: ResourcesConfig{
			Root:        "assets",
			Images:      p.Images,
			Shaders:     p.Shaders,
			Materials:   p.Materials,
			MaterialExt: p.MaterialExt,
			Meshes:      p.Meshes,
			Sounds:      p.Sounds,
			Music:       p.Music,
			Scripts:     p.Scripts,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Interval: 500 * time.Millisecond,
		},
		DevServer: DevServerConfig{
			Enabled: false,
			Address: "127.0.0.1:7420",
		},
		World: WorldConfig{
			TickRate: time.Second / 60,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Resources.Root == "" {
		errs = append(errs, errors.New("resources.root is empty"))
	}
	switch c.Resources.MaterialExt {
	case "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("resources.material_ext %q is not json or yaml", c.Resources.MaterialExt))
	}
	if c.Watch.Enabled && c.Watch.Interval <= 0 {
		errs = append(errs, errors.New("watch.interval must be positive"))
	}
	if c.DevServer.Enabled && c.DevServer.Address == "" {
		errs = append(errs, errors.New("devserver.address is empty"))
	}
	if c.World.TickRate <= 0 {
		errs = append(errs, errors.New("world.tick_rate must be positive"))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q is not json or console", c.Logging.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
