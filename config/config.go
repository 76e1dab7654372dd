// Package config loads the station configuration from defaults, an optional YAML file, a .env
// file and WEATHER_DISPLAY_* environment variables, in increasing order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to environment overrides; "api.url" becomes WEATHER_DISPLAY_API_URL.
const EnvPrefix = "WEATHER_DISPLAY"

// Panel outputs.
const (
	OutputFramebuffer = "framebuffer"
	OutputPNG         = "png"
	OutputTerminal    = "terminal"
	OutputHTTP        = "http"
)

// Battery sources.
const (
	BatteryFixed  = "fixed"
	BatteryADC    = "adc"
	BatterySysfs  = "sysfs"
	BatteryINA260 = "ina260"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds all configuration for the station.
type Config struct {
	API                APIConfig           `mapstructure:"api" yaml:"api"`
	UpdateInterval     time.Duration       `mapstructure:"update_interval" yaml:"update_interval" validate:"min=1s"`
	StalenessThreshold time.Duration       `mapstructure:"staleness_threshold" yaml:"staleness_threshold" validate:"min=1m"`
	Battery            BatteryConfig       `mapstructure:"battery" yaml:"battery"`
	Precipitation      PrecipitationConfig `mapstructure:"precipitation" yaml:"precipitation"`
	Chart              ChartConfig         `mapstructure:"chart" yaml:"chart"`
	Panel              PanelConfig         `mapstructure:"panel" yaml:"panel"`
	Server             ServerConfig        `mapstructure:"server" yaml:"server"`
	Store              StoreConfig         `mapstructure:"store" yaml:"store"`
	Logging            LoggingConfig       `mapstructure:"logging" yaml:"logging"`
}

type APIConfig struct {
	URL        string        `mapstructure:"url" yaml:"url" validate:"required,url"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=1ms"`
	Retries    int           `mapstructure:"retries" yaml:"retries" validate:"min=1,max=10"`
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay" validate:"min=0"`
}

type BatteryConfig struct {
	Source    string `mapstructure:"source" yaml:"source" validate:"oneof=fixed adc sysfs ina260"`
	Tolerance int    `mapstructure:"tolerance" yaml:"tolerance" validate:"min=0,max=100"`

	// Pin is the analog pin name for the adc source.
	Pin     string  `mapstructure:"pin" yaml:"pin" validate:"required_if=Source adc"`
	Divider float64 `mapstructure:"divider" yaml:"divider" validate:"gt=0"`

	SysfsPath string `mapstructure:"sysfs_path" yaml:"sysfs_path" validate:"required_if=Source sysfs"`
	Fixed     int    `mapstructure:"fixed" yaml:"fixed" validate:"min=0,max=100"`

	// I2CBus is the bus name for the ina260 source; empty opens the first bus.
	I2CBus     string `mapstructure:"i2c_bus" yaml:"i2c_bus"`
	I2CAddress uint16 `mapstructure:"i2c_address" yaml:"i2c_address" validate:"min=1,max=127"`
}

type PrecipitationConfig struct {
	Hours int `mapstructure:"hours" yaml:"hours" validate:"oneof=12 24"`
}

type ChartConfig struct {
	Style string `mapstructure:"style" yaml:"style" validate:"oneof=line bar"`
}

type PanelConfig struct {
	Width    int      `mapstructure:"width" yaml:"width" validate:"min=1,max=4096"`
	Height   int      `mapstructure:"height" yaml:"height" validate:"min=1,max=4096"`
	Rotation int      `mapstructure:"rotation" yaml:"rotation" validate:"oneof=0 90 180 270"`
	Outputs  []string `mapstructure:"outputs" yaml:"outputs" validate:"min=1,dive,oneof=framebuffer png terminal http"`

	Framebuffer     string `mapstructure:"framebuffer" yaml:"framebuffer"`
	PNGPath         string `mapstructure:"png_path" yaml:"png_path"`
	TerminalColumns int    `mapstructure:"terminal_columns" yaml:"terminal_columns" validate:"min=8"`

	// PowerPin is the GPIO that switches panel power; empty leaves power to the panel.
	PowerPin    string        `mapstructure:"power_pin" yaml:"power_pin"`
	PowerSettle time.Duration `mapstructure:"power_settle" yaml:"power_settle" validate:"min=0"`
}

// Has reports whether output is enabled.
func (p PanelConfig) Has(output string) bool {
	for _, o := range p.Outputs {
		if o == output {
			return true
		}
	}
	return false
}

type ServerConfig struct {
	Listen string `mapstructure:"listen" yaml:"listen"`
}

type StoreConfig struct {
	Kind string `mapstructure:"kind" yaml:"kind" validate:"oneof=memory sqlite"`
	Path string `mapstructure:"path" yaml:"path" validate:"required_if=Kind sqlite"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// Logger returns a logger writing to stderr with the configured level and format.
func (l LoggingConfig) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	if l.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

// ThresholdMinutes is the staleness threshold in whole minutes.
func (c *Config) ThresholdMinutes() int {
	return int(c.StalenessThreshold / time.Minute)
}

var validate = validator.New()

// Load reads the configuration. An empty path skips the file; a .env file in the working
// directory is loaded when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		v.SetConfigType("yaml")
		if err = v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// readFile reads a YAML file and expands $VAR references in its values.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	// Round trip through a map so anchors and flow style are normalized before expansion.
	var raw map[string]interface{}
	if err = yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if data, err = yaml.Marshal(raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return []byte(os.ExpandEnv(string(data))), nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Dump writes the effective configuration as YAML.
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", "")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.retries", 3)
	v.SetDefault("api.retry_delay", 2*time.Second)

	v.SetDefault("update_interval", 5*time.Minute)
	v.SetDefault("staleness_threshold", 30*time.Minute)

	v.SetDefault("battery.source", BatteryFixed)
	v.SetDefault("battery.tolerance", 10)
	v.SetDefault("battery.pin", "")
	v.SetDefault("battery.divider", 2.0)
	v.SetDefault("battery.sysfs_path", "/sys/class/power_supply/BAT0/capacity")
	v.SetDefault("battery.fixed", 100)
	v.SetDefault("battery.i2c_bus", "")
	v.SetDefault("battery.i2c_address", 0x40)

	v.SetDefault("precipitation.hours", 12)
	v.SetDefault("chart.style", "line")

	v.SetDefault("panel.width", 960)
	v.SetDefault("panel.height", 540)
	v.SetDefault("panel.rotation", 0)
	v.SetDefault("panel.outputs", []string{OutputPNG, OutputHTTP})
	v.SetDefault("panel.framebuffer", "/dev/fb0")
	v.SetDefault("panel.png_path", "weather-display.png")
	v.SetDefault("panel.terminal_columns", 120)
	v.SetDefault("panel.power_pin", "")
	v.SetDefault("panel.power_settle", 100*time.Millisecond)

	v.SetDefault("server.listen", ":8080")

	v.SetDefault("store.kind", StoreMemory)
	v.SetDefault("store.path", "weather-display.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}
