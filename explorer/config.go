package explorer

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tonnetz-go/tonnetz"
	"github.com/tonnetz-go/tonnetz/lattice"
	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the explorer. The defaults are embedded from
// config.yml; a config.yml in the user's config directory overrides any of
// them.
type Config struct {
	BaseFrequency float64          `yaml:"baseFrequency"`
	Waveform      tonnetz.Waveform `yaml:"waveform"`
	MasterGain    float64          `yaml:"masterGain"`

	SampleRate int           `yaml:"sampleRate"`
	Attack     time.Duration `yaml:"attack"`
	Release    time.Duration `yaml:"release"`
	StopDelay  time.Duration `yaml:"stopDelay"`
	Sustain    float32       `yaml:"sustain"`
	MaxVoices  int           `yaml:"maxVoices"`

	InitialRadius int     `yaml:"initialRadius"`
	ExpandStep    int     `yaml:"expandStep"`
	ExpandMargin  int     `yaml:"expandMargin"`
	MaxExtent     int     `yaml:"maxExtent"`
	NodeSpacing   float64 `yaml:"nodeSpacing"`
	MinZoom       float64 `yaml:"minZoom"`
	MaxZoom       float64 `yaml:"maxZoom"`
	LineHeight    float64 `yaml:"lineHeight"`

	SummaryTemplate string `yaml:"summaryTemplate"`

	ExportLength time.Duration `yaml:"exportLength"`
	ExportPCM16  bool          `yaml:"exportPCM16"`
}

// ConfigDirName is the directory under os.UserConfigDir() where user
// overrides are looked up.
const ConfigDirName = "tonnetz"

//go:embed config.yml
var defaultConfigYaml []byte

// DefaultConfig returns the embedded defaults.
func DefaultConfig() Config {
	var c Config
	if err := ReadConfig(defaultConfigYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// ReadConfig decodes YAML over the values already in target. Unknown keys
// are an error so that typos do not go unnoticed.
func ReadConfig(data []byte, target any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ReadCustomConfig decodes filename from the user's config directory over
// target. A missing file is reported with an error wrapping fs.ErrNotExist.
func ReadCustomConfig(filename string, target any) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(filepath.Join(configDir, ConfigDirName, filename))
	if err != nil {
		return err
	}
	return ReadConfig(data, target)
}

// LoadConfig returns the defaults overridden by the user's config.yml, if
// one exists.
func LoadConfig() (Config, error) {
	c := DefaultConfig()
	if err := ReadCustomConfig("config.yml", &c); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return c, fmt.Errorf("reading user config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return c, nil
}

// Validate checks the values that have no sensible fallback.
func (c Config) Validate() error {
	if !(floatRange{Min: 0, Max: MaxBaseFrequency, OpenMin: true}).Contains(c.BaseFrequency) {
		return fmt.Errorf("baseFrequency must be in (0, %d], got %v", MaxBaseFrequency, c.BaseFrequency)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sampleRate must be positive, got %d", c.SampleRate)
	}
	if c.Sustain <= 0 || c.Sustain > 1 {
		return fmt.Errorf("sustain must be in (0, 1], got %v", c.Sustain)
	}
	if c.InitialRadius < 0 {
		return fmt.Errorf("initialRadius must not be negative, got %d", c.InitialRadius)
	}
	if c.ExportLength <= 0 {
		return fmt.Errorf("exportLength must be positive, got %v", c.ExportLength)
	}
	if c.MaxExtent > 0 && c.MaxExtent < c.InitialRadius {
		return fmt.Errorf("maxExtent %d is smaller than initialRadius %d", c.MaxExtent, c.InitialRadius)
	}
	return nil
}

// Envelope returns the voice envelope of the synth.
func (c Config) Envelope() tonnetz.Envelope {
	e := tonnetz.DefaultEnvelope
	e.Attack, e.Release, e.StopDelay = c.Attack, c.Release, c.StopDelay
	e.Sustain = c.Sustain
	if c.MaxVoices > 0 {
		e.MaxVoices = c.MaxVoices
	}
	return e
}

func (c Config) ViewportConfig() lattice.ViewportConfig {
	return lattice.ViewportConfig{
		Scale:      c.NodeSpacing,
		MinScale:   c.MinZoom * c.NodeSpacing,
		MaxScale:   c.MaxZoom * c.NodeSpacing,
		LineHeight: c.LineHeight,
		Margin:     c.ExpandMargin,
		Step:       c.ExpandStep,
	}
}
