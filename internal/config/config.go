package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Sources []Source   `yaml:"sources"`
	Years   []int      `yaml:"years,omitempty"` // Defaults to the years present in the dataset
	MQTT    MQTTConfig `yaml:"mqtt,omitempty"`
}

// Source describes one CSV export file and the columns it carries.
// The first column is always the timestamp.
type Source struct {
	Path      string   `yaml:"path"`
	Delimiter string   `yaml:"delimiter,omitempty"` // ";" for time-series exports, "," for the summary variant
	Columns   []string `yaml:"columns"`
	Repeat    int      `yaml:"repeat,omitempty"`    // Tile the metric block after the timestamp column
	DateOnly  bool     `yaml:"date_only,omitempty"` // Timestamps are YYYY-MM-DD rather than full date-times
}

// MQTTConfig holds broker settings for publishing stats to Home Assistant
type MQTTConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"` // e.g., "127.0.0.1:1883"
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	TopicPrefix string `yaml:"topic_prefix,omitempty"` // default "heatpump"
}

// Load reads the config file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty config if file doesn't exist
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// DefaultConfigPath returns the default config file path (local directory)
func DefaultConfigPath() string {
	return "config.yaml"
}

// GetDelimiter returns the field delimiter with a default of ';'
func (s *Source) GetDelimiter() (rune, error) {
	if s.Delimiter == "" {
		return ';', nil
	}
	runes := []rune(s.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s.Delimiter)
	}
	return runes[0], nil
}

// ExpandedColumns returns the full positional column list, tiling the
// metric block after the timestamp column Repeat times. Some exports
// repeat their column group for different parts of the dataset.
func (s *Source) ExpandedColumns() []string {
	if len(s.Columns) == 0 {
		return nil
	}
	if s.Repeat <= 1 {
		return s.Columns
	}
	columns := make([]string, 0, 1+(len(s.Columns)-1)*s.Repeat)
	columns = append(columns, s.Columns[0])
	for i := 0; i < s.Repeat; i++ {
		columns = append(columns, s.Columns[1:]...)
	}
	return columns
}

// GetTopicPrefix returns the MQTT topic prefix with a default
func (m *MQTTConfig) GetTopicPrefix() string {
	if m.TopicPrefix == "" {
		return "heatpump"
	}
	return m.TopicPrefix
}
