package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InputConfig controls capture ingestion.
type InputConfig struct {
	HeaderOffset int `yaml:"header_offset"`
}

// DecoderConfig controls how buffers are split into fields.
type DecoderConfig struct {
	FirstLayer string `yaml:"first_layer"`
	Direction  string `yaml:"direction"`
}

// ReportConfig controls template rendering.
type ReportConfig struct {
	TopN     int `yaml:"top_n"`
	MaxWidth int `yaml:"max_width"`
}

// FileConfig holds settings for writers that produce files.
type FileConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds connection details for ClickHouse.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Table    string `yaml:"table"`
}

// NATSConfig holds connection details for NATS.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// WriterDef defines one report writer.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	File       FileConfig       `yaml:"file"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	NATS       NATSConfig       `yaml:"nats"`
}

// APIConfig holds the HTTP API settings.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Decoder DecoderConfig `yaml:"decoder"`
	Report  ReportConfig  `yaml:"report"`
	Writers []WriterDef   `yaml:"writers"`
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Input:   InputConfig{HeaderOffset: 14},
		Decoder: DecoderConfig{FirstLayer: "auto", Direction: "up"},
		Report:  ReportConfig{TopN: 10, MaxWidth: 256},
		API:     APIConfig{ListenAddr: ":8080"},
		Log:     LogConfig{Level: "info"},
	}
}

// LoadConfig reads the configuration from a YAML file on top of the defaults.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets secrets and endpoints stay out of the file.
func (c *Config) applyEnvOverrides() {
	password := os.Getenv("TEMPLATES_CLICKHOUSE_PASSWORD")
	natsURL := os.Getenv("TEMPLATES_NATS_URL")
	for i := range c.Writers {
		w := &c.Writers[i]
		if w.Type == "clickhouse" && password != "" {
			w.ClickHouse.Password = password
		}
		if w.Type == "nats" && natsURL != "" {
			w.NATS.URL = natsURL
		}
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Input.HeaderOffset < 0 {
		return fmt.Errorf("input.header_offset must not be negative, got %d", c.Input.HeaderOffset)
	}
	if c.Report.TopN < 0 {
		return fmt.Errorf("report.top_n must not be negative, got %d", c.Report.TopN)
	}
	if c.Report.MaxWidth < 0 {
		return fmt.Errorf("report.max_width must not be negative, got %d", c.Report.MaxWidth)
	}
	for i, w := range c.Writers {
		if w.Type == "" {
			return fmt.Errorf("writers[%d]: missing type", i)
		}
	}
	return nil
}
